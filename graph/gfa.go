package graph

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/triegraph/triegraph/dna"
)

// FromGFA parses a (subset of) GFA: `S` segment lines and `L` link lines
// with a CIGAR that must be exactly "0M" (no overlap). Only `+`/`+` links
// are accepted; a link with a `-` orientation on either end is refused.
// Any other overlap, or any other record type carrying structural meaning,
// is refused.
func FromGFA(r io.Reader, alpha dna.Alphabet) (*AdjacencyGraph, error) {
	b := NewBuilder(alpha)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var links [][4]string // from, fromOrient, to, toOrient

	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		switch fields[0] {
		case "S":
			if len(fields) < 3 {
				return nil, fmt.Errorf("graph: malformed GFA segment line %q", line)
			}
			if _, err := b.AddNode(fields[2], fields[1]); err != nil {
				return nil, fmt.Errorf("graph: segment %s: %w", fields[1], err)
			}
		case "L":
			if len(fields) < 6 {
				return nil, fmt.Errorf("graph: malformed GFA link line %q", line)
			}
			if fields[5] != "0M" {
				return nil, fmt.Errorf("graph: unsupported link overlap %q (only 0M is supported)", fields[5])
			}
			links = append(links, [4]string{fields[1], fields[2], fields[3], fields[4]})
		case "H", "C", "P", "W":
			// header/containment/path/walk: not needed to build the graph
			continue
		default:
			return nil, fmt.Errorf("graph: unknown GFA record type %q", fields[0])
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	for _, l := range links {
		from, ok := b.LookupSeg(l[0])
		if !ok {
			return nil, fmt.Errorf("graph: link references unknown segment %q", l[0])
		}
		to, ok := b.LookupSeg(l[2])
		if !ok {
			return nil, fmt.Errorf("graph: link references unknown segment %q", l[2])
		}
		if l[1] != "+" || l[3] != "+" {
			return nil, fmt.Errorf("graph: link orientation %s%s/%s%s requires twin-mode graph construction, not supported by this adapter without WithTwins", l[0], l[1], l[2], l[3])
		}
		b.AddEdge(from, to)
	}

	return b.Build(), nil
}
