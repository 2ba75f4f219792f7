package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/keyfold/keyfold/version"
)

func main() {
	subCmd, config := parseCommandLine()

	var err error
	switch subCmd {
	case createSubCmd:
		err = create(config.(*createConfig))
	case importSubCmd:
		err = importMnemonic(config.(*importConfig))
	case showAddressSubCmd:
		err = showAddress(config.(*showAddressConfig))
	case deriveSubCmd:
		err = derive(config.(*deriveConfig))
	case exportWIFSubCmd:
		err = exportWIF(config.(*exportWIFConfig))
	case signSubCmd:
		err = sign(config.(*signConfig))
	case versionSubCmd:
		fmt.Println(version.Version())
	default:
		err = errors.Errorf("Unknown sub-command '%s'\n", subCmd)
	}

	if err != nil {
		printErrorAndExit(err)
	}
}

func printErrorAndExit(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}
