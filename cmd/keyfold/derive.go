package main

import (
	"fmt"
)

func derive(conf *deriveConfig) error {
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

	public, err := key.Public()
	if err != nil {
		return err
	}

	fmt.Printf("Keys at %s:\n", conf.Path)
	fmt.Printf("Extended public key:\n%s\n", public.String())
	fmt.Printf("Public key:\n%x\n", key.PublicKeyBytes())
	if conf.Private {
		fmt.Printf("Extended private key:\n%s\n", key.String())
	}
	return nil
}
