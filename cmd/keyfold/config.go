package main

import (
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

const (
	createSubCmd      = "create"
	importSubCmd      = "import"
	showAddressSubCmd = "show-address"
	deriveSubCmd      = "derive"
	exportWIFSubCmd   = "export-wif"
	signSubCmd        = "sign"
	versionSubCmd     = "version"
)

type keysFileFlags struct {
	KeysFile string `long:"keys-file" short:"f" description:"Keys file location (default: ~/.keyfold/keys.json)"`
}

type createConfig struct {
	WordCount int  `long:"words" short:"w" default:"24" description:"Mnemonic length: 12, 15, 18, 21 or 24 words"`
	Force     bool `long:"force" description:"Overwrite an existing keys file"`
	keysFileFlags
}

type importConfig struct {
	Force bool `long:"force" description:"Overwrite an existing keys file"`
	keysFileFlags
}

type showAddressConfig struct {
	Coin    string `long:"coin" short:"c" default:"bitcoin" description:"Coin to derive an address for: bitcoin, testnet or ethereum"`
	Account uint32 `long:"account" short:"a" default:"0" description:"Account index"`
	Index   uint32 `long:"index" short:"i" default:"0" description:"Address index"`
	Change  bool   `long:"change" description:"Derive an internal (change) address"`
	SegWit  bool   `long:"segwit" description:"Show a native segwit address instead of a legacy one"`
	keysFileFlags
}

type deriveConfig struct {
	Path    string `long:"path" short:"p" required:"true" description:"Derivation path, e.g. m/44'/0'/0'/0/0"`
	Private bool   `long:"private" description:"Also print the extended private key"`
	keysFileFlags
}

type exportWIFConfig struct {
	Account uint32 `long:"account" short:"a" default:"0" description:"Account index"`
	Index   uint32 `long:"index" short:"i" default:"0" description:"Address index"`
	Testnet bool   `long:"testnet" description:"Use the testnet WIF version byte"`
	keysFileFlags
}

type signConfig struct {
	Path   string `long:"path" short:"p" required:"true" description:"Derivation path of the signing key"`
	Digest string `long:"digest" short:"d" required:"true" description:"32-byte message digest to sign (encoded in hex)"`
	keysFileFlags
}

func parseCommandLine() (subCommand string, config interface{}) {
	parser := flags.NewParser(nil, flags.PrintErrors|flags.HelpFlag)

	createConf := &createConfig{}
	parser.AddCommand(createSubCmd, "Creates a new wallet",
		"Generates a fresh mnemonic and stores it encrypted under a password", createConf)

	importConf := &importConfig{}
	parser.AddCommand(importSubCmd, "Imports an existing mnemonic",
		"Reads a mnemonic from stdin, validates it and stores it encrypted under a password", importConf)

	showAddressConf := &showAddressConfig{}
	parser.AddCommand(showAddressSubCmd, "Shows a wallet address",
		"Derives and prints an address for the chosen coin, account and index", showAddressConf)

	deriveConf := &deriveConfig{}
	parser.AddCommand(deriveSubCmd, "Derives extended keys at a path",
		"Derives the wallet key at an arbitrary derivation path and prints its extended keys", deriveConf)

	exportWIFConf := &exportWIFConfig{}
	parser.AddCommand(exportWIFSubCmd, "Exports a private key in wallet import format",
		"Derives a Bitcoin key and prints it in wallet import format", exportWIFConf)

	signConf := &signConfig{}
	parser.AddCommand(signSubCmd, "Signs a message digest",
		"Derives a key and produces a recoverable ECDSA signature over the given digest", signConf)

	parser.AddCommand(versionSubCmd, "Shows the version",
		"Shows the application version", &struct{}{})

	_, err := parser.Parse()
	if err != nil {
		var flagsErr *flags.Error
		if ok := errors.As(err, &flagsErr); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		} else {
			os.Exit(1)
		}
		return "", nil
	}

	switch parser.Command.Active.Name {
	case createSubCmd:
		config = createConf
	case importSubCmd:
		config = importConf
	case showAddressSubCmd:
		config = showAddressConf
	case deriveSubCmd:
		config = deriveConf
	case exportWIFSubCmd:
		config = exportWIFConf
	case signSubCmd:
		config = signConf
	}

	return parser.Command.Active.Name, config
}
