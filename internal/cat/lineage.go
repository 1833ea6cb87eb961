// Package cat proves token coin lineage from a parent coin's revealed puzzle
// and solution.
package cat

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/AlexZinkM/dig-wallet/internal/chain"
	"github.com/AlexZinkM/dig-wallet/internal/clvm"
	"github.com/AlexZinkM/dig-wallet/internal/puzzle"
)

var (
	ErrPuzzleHashMismatch = errors.New("puzzle reveal does not hash to the parent puzzle hash")
	ErrNotCAT             = errors.New("parent puzzle is not a CAT")
	ErrAssetMismatch      = errors.New("parent CAT has a different asset id")
	ErrMalformedSolution  = errors.New("parent solution is not a CAT solution")
)

// catSolutionLen is the arity of a CAT solution: inner solution, lineage
// proof, previous coin id, this coin info, next coin proof, previous
// subtotal, extra delta.
const (
	catSolutionLen   = 7
	thisCoinInfoSlot = 3
)

// LineageParser checks that a parent spend was a CAT spend of a given asset.
type LineageParser struct {
	modHash chain.Bytes32
}

// NewLineageParser returns a parser for CAT v2 coins.
func NewLineageParser() *LineageParser {
	return &LineageParser{modHash: puzzle.CATPuzzleHash}
}

// Runnable decodes a serialized puzzle or solution.
func (p *LineageParser) Runnable(serialized []byte) (*clvm.Program, error) {
	prog, err := clvm.Deserialize(serialized)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize program: %w", err)
	}
	return prog, nil
}

// ParseLineage returns the lineage proof a child of parent carries when
// parent was spent with puz and sol. It fails unless puz is the CAT puzzle of
// assetID committed to by parent's puzzle hash and sol spends exactly parent.
func (p *LineageParser) ParseLineage(parent chain.Coin, assetID chain.Bytes32, puz, sol *clvm.Program) (*chain.LineageProof, error) {
	if puz.TreeHash() != parent.PuzzleHash {
		return nil, ErrPuzzleHashMismatch
	}

	mod, args, ok := puz.Uncurry()
	if !ok || len(args) != 3 || mod.TreeHash() != p.modHash {
		return nil, ErrNotCAT
	}
	if !bytes.Equal(args[0].AtomBytes(), p.modHash[:]) {
		return nil, ErrNotCAT
	}
	tail, err := args[1].Bytes32()
	if err != nil || tail != assetID {
		return nil, ErrAssetMismatch
	}
	inner := args[2]

	if err := checkThisCoinInfo(parent, sol); err != nil {
		return nil, err
	}

	return &chain.LineageProof{
		ParentParentCoinInfo: parent.ParentCoinInfo,
		ParentInnerPuzzle:    inner.TreeHash(),
		ParentAmount:         parent.Amount,
	}, nil
}

func checkThisCoinInfo(parent chain.Coin, sol *clvm.Program) error {
	items, ok := sol.Items()
	if !ok || len(items) != catSolutionLen {
		return ErrMalformedSolution
	}
	info, ok := items[thisCoinInfoSlot].Items()
	if !ok || len(info) != 3 {
		return ErrMalformedSolution
	}

	parentID, err := info[0].Bytes32()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedSolution, err)
	}
	ph, err := info[1].Bytes32()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedSolution, err)
	}
	amount, err := info[2].Uint64()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedSolution, err)
	}

	spent := chain.Coin{ParentCoinInfo: parentID, PuzzleHash: ph, Amount: amount}
	if spent != parent {
		return fmt.Errorf("%w: solution spends coin %s, not %s", ErrMalformedSolution, spent.ID(), parent.ID())
	}
	return nil
}
