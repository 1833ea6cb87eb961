package chain

import "fmt"

// Network describes the chain a wallet talks to.
type Network struct {
	Name             string
	GenesisChallenge Bytes32
	AddressPrefix    string
}

var (
	Mainnet = Network{
		Name:             "mainnet",
		GenesisChallenge: MustBytes32("ccd5bb71183532bff220ba46c268991a3ff07eb358e8255a65c30a2dce0e5fbb"),
		AddressPrefix:    "xch",
	}
	Testnet11 = Network{
		Name:             "testnet11",
		GenesisChallenge: MustBytes32("37a90eb5185a9c4439a91ddc98bbadce7b4feba060d50116a067de66bf236615"),
		AddressPrefix:    "txch",
	}
)

// DIGAssetID identifies the DIG token.
var DIGAssetID = MustBytes32("a406d3a9de984d03c9591c10d917593b434d5263cabe2b42f6b367df16832f81")

// NetworkByName resolves a configured network name.
func NetworkByName(name string) (Network, error) {
	switch name {
	case Mainnet.Name, "":
		return Mainnet, nil
	case Testnet11.Name:
		return Testnet11, nil
	default:
		return Network{}, fmt.Errorf("unknown network %q", name)
	}
}
