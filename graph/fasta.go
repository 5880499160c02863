package graph

import (
	"bufio"
	"io"
	"strings"

	"github.com/triegraph/triegraph/dna"
)

// FromFASTA parses FASTA records into a graph of unconnected nodes: `>` starts a
// record (the header becomes the segment id), `;` lines are comments and
// are skipped, and the sequence is the concatenation of all subsequent
// non-header lines up to the next `>`. Each record becomes one node; no
// edges are added between records (FASTA carries no adjacency information).
func FromFASTA(r io.Reader, alpha dna.Alphabet) (*AdjacencyGraph, error) {
	b := NewBuilder(alpha)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)

	var curID string
	var curSeq strings.Builder
	haveRecord := false

	flush := func() error {
		if !haveRecord {
			return nil
		}
		_, err := b.AddNode(curSeq.String(), curID)
		curSeq.Reset()
		return err
	}

	for sc.Scan() {
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, ">"):
			if err := flush(); err != nil {
				return nil, err
			}
			curID = strings.TrimSpace(strings.TrimPrefix(line, ">"))
			haveRecord = true
		case strings.HasPrefix(line, ";"):
			continue
		default:
			curSeq.WriteString(strings.TrimSpace(line))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}

	return b.Build(), nil
}
