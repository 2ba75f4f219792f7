package main

import (
	"encoding/hex"
	"fmt"

	"github.com/pkg/errors"

	"github.com/keyfold/keyfold/curve"
	"github.com/keyfold/keyfold/util"
)

func sign(conf *signConfig) error {
	digest, err := hex.DecodeString(conf.Digest)
	if err != nil {
		return errors.Wrap(err, "decoding digest")
	}
	if len(digest) != 32 {
		return errors.Errorf("digest must be 32 bytes, got %d", len(digest))
	}

	master, err := unlockMaster(conf.keysFileFlags)
	if err != nil {
		return err
	}
	defer master.Zero()

	key, err := master.DeriveFromPath(conf.Path)
	if err != nil {
		return err
	}
	defer key.Zero()

	privateKey, err := key.PrivateKeyBytes()
	if err != nil {
		return err
	}
	defer util.ZeroBytes(privateKey)

	backend := curve.Secp256k1{}
	signature, err := backend.SignRecoverable(privateKey, digest)
	if err != nil {
		return err
	}

	fmt.Printf("Signature (r || s || recovery id):\n%x\n", signature)
	fmt.Printf("Signing public key:\n%x\n", key.PublicKeyBytes())
	return nil
}
