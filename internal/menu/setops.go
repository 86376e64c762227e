package menu

import (
	"context"

	"github.com/jjtimmons/seqtools/internal/seqset"
)

// opHelp describes each operation with the example from the menu's help
var opHelp = map[seqset.Op]string{
	seqset.OR:  "OR gives all the sequences that occur in either file.\nFor eg File1 has 'AAATAA' and 'AAAAAA', File2 has 'AAATAA' and 'AAAGAA'. The output is 'AAATAA', 'AAAAAA' and 'AAAGAA'",
	seqset.AND: "AND gives only those sequences which occur in both files.\nFor eg File1 has 'AAATAA' and 'AAAAAA', File2 has 'AAATAA' and 'AAAGAA'. The output is 'AAATAA'",
	seqset.XOR: "XOR gives those which only occur in either file, but not in both.\nFor eg File1 has 'AAATAA' and 'AAAAAA', File2 has 'AAATAA' and 'AAAGAA'. The output is 'AAAAAA' and 'AAAGAA'",
	seqset.NOT: "NOT gives those which occur in the first file but not in the second.\nFor eg File1 has 'AAATAA', 'AAAACA' and 'AAAAAA', File2 has 'AAATAA' and 'AAAGAA'. The output is 'AAAACA' and 'AAAAAA'",
}

// setAlgebra reads two sets of sequences and writes out the result of
// combining them with OR, AND, XOR or NOT, as many times as the user wants
func (m *Menu) setAlgebra(ctx context.Context) error {
	m.printf("\nReads in two sets of sequences and writes out the result of a logical operation on them.\n")

	first, ok, err := m.openFile("\nPlease enter the first sequence filename: ")
	if err != nil || !ok {
		return err
	}
	second, ok, err := m.openFile("\nPlease enter the second sequence filename: ")
	if err != nil || !ok {
		return err
	}

	for {
		out, ok, err := m.outputName("\nPlease enter the output filename: ")
		if err != nil || !ok {
			return err
		}

		m.printf("\nPlease choose the logical operation by pressing the correct digit:\n")
		choice, err := m.choose("1-> OR 2-> AND 3-> XOR 4-> NOT: ", 4)
		if err != nil {
			return err
		}
		op := seqset.Op(choice)
		m.printf("\n%s\n", opHelp[op])

		result, err := seqset.Apply(op, first, second)
		if err != nil {
			return err
		}
		if _, err := m.save(result, out, "logical "+op.String()); err != nil {
			return err
		}

		again, err := m.confirm("\nWould you like to perform another logical operation? (y/n): ")
		if err != nil || !again {
			return err
		}
	}
}
