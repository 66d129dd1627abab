// Package serialize implements lfr's save format (spec.md §4.8): a
// line-oriented, tab-separated text encoding chosen to be human-diffable
// rather than compact. Lines come in five kinds — node, place, data,
// value, link — and Load logs and skips lines of an unknown kind and
// ignores extra trailing fields on known lines, so old hosts can open files
// written by newer ones.
package serialize

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jakobeklund/lfr/core"
	"github.com/jakobeklund/lfr/model"
	"github.com/jakobeklund/lfr/vm"
)

const (
	kindNode  = "node"
	kindPlace = "place"
	kindData  = "data"
	kindValue = "value"
	kindLink  = "link"
)

// Save writes g in declaration order: nodes, placements, data links, fixed
// values, then flow links. reg resolves each node's opcode back to its
// stable on-disk name.
func Save(w io.Writer, g *model.Graph, reg *vm.Registry) error {
	bw := bufio.NewWriter(w)

	var nodeErr error
	g.ForEachNode(func(id uint32, n *model.Node) bool {
		name := reg.Get(n.Opcode).Name
		if _, err := fmt.Fprintf(bw, "%s\t%d\t%s\n", kindNode, id, name); err != nil {
			nodeErr = err
			return false
		}
		return true
	})
	if nodeErr != nil {
		return fmt.Errorf("serialize: write node: %w", nodeErr)
	}

	var placeErr error
	g.ForEachNode(func(id uint32, n *model.Node) bool {
		if n.X == 0 && n.Y == 0 {
			return true
		}
		if _, err := fmt.Fprintf(bw, "%s\t%d\t%s\t%s\n", kindPlace, id, formatFloat(n.X), formatFloat(n.Y)); err != nil {
			placeErr = err
			return false
		}
		return true
	})
	if placeErr != nil {
		return fmt.Errorf("serialize: write place: %w", placeErr)
	}

	var dataErr error
	g.ForEachNode(func(id uint32, n *model.Node) bool {
		for slot, in := range n.Inputs {
			if !in.Linked() {
				continue
			}
			if _, err := fmt.Fprintf(bw, "%s\t%d\t%d\t%d\t%d\n", kindData, id, slot, in.SourceNode, in.SourceSlot); err != nil {
				dataErr = err
				return false
			}
		}
		return true
	})
	if dataErr != nil {
		return fmt.Errorf("serialize: write data: %w", dataErr)
	}

	var valueErr error
	g.ForEachNode(func(id uint32, n *model.Node) bool {
		for slot, in := range n.Inputs {
			if in.Linked() || in.Fixed.IsNil() {
				continue
			}
			fields, err := encodeVariant(in.Fixed)
			if err != nil {
				valueErr = err
				return false
			}
			if _, err := fmt.Fprintf(bw, "%s\t%d\t%d\t%s\n", kindValue, id, slot, strings.Join(fields, "\t")); err != nil {
				valueErr = err
				return false
			}
		}
		return true
	})
	if valueErr != nil {
		return fmt.Errorf("serialize: write value: %w", valueErr)
	}

	var linkErr error
	g.ForEachFlowLink(func(from, to uint32) bool {
		if _, err := fmt.Fprintf(bw, "%s\t%d\t%d\n", kindLink, from, to); err != nil {
			linkErr = err
			return false
		}
		return true
	})
	if linkErr != nil {
		return fmt.Errorf("serialize: write link: %w", linkErr)
	}

	return bw.Flush()
}

// Load reads a graph previously written by Save into g, which must be
// empty. onWarn receives one message per skipped or substituted line (an
// unknown line kind, a line with too few fields, a malformed value payload,
// or an unknown instruction name, which is loaded as print_own_id); a nil
// onWarn silences them. A field that does not parse as a number, or a line
// the graph rejects (such as an unknown node id or a duplicate flow link),
// stops Load with an error.
func Load(r io.Reader, g *model.Graph, reg *vm.Registry, onWarn func(string, ...any)) error {
	if onWarn == nil {
		onWarn = func(string, ...any) {}
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if err := loadLine(g, reg, fields, onWarn); err != nil {
			return fmt.Errorf("serialize: line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("serialize: scan: %w", err)
	}
	return nil
}

func loadLine(g *model.Graph, reg *vm.Registry, fields []string, onWarn func(string, ...any)) error {
	switch fields[0] {
	case kindNode:
		if len(fields) < 3 {
			onWarn("serialize: malformed node line, skipping: %v", fields)
			return nil
		}
		fileID, err := parseUint(fields[1])
		if err != nil {
			return err
		}
		op := reg.Find(fields[2])
		if reg.Get(op).Name != fields[2] {
			onWarn("serialize: unknown instruction %q, loading as print_own_id", fields[2])
		}
		id, err := g.AddNode(op)
		if err != nil {
			return fmt.Errorf("add node: %w", err)
		}
		if id != fileID {
			if err := g.Nodes.Relabel(id, fileID); err != nil {
				return fmt.Errorf("relabel node %d -> %d: %w", id, fileID, err)
			}
		}
		return nil

	case kindPlace:
		if len(fields) < 4 {
			onWarn("serialize: malformed place line, skipping: %v", fields)
			return nil
		}
		id, err := parseUint(fields[1])
		if err != nil {
			return err
		}
		x, err := parseFloat(fields[2])
		if err != nil {
			return err
		}
		y, err := parseFloat(fields[3])
		if err != nil {
			return err
		}
		g.SetPosition(id, x, y)
		return nil

	case kindData:
		if len(fields) < 5 {
			onWarn("serialize: malformed data line, skipping: %v", fields)
			return nil
		}
		id, err := parseUint(fields[1])
		if err != nil {
			return err
		}
		slot, err := parseInt(fields[2])
		if err != nil {
			return err
		}
		src, err := parseUint(fields[3])
		if err != nil {
			return err
		}
		srcSlot, err := parseInt(fields[4])
		if err != nil {
			return err
		}
		return g.LinkData(id, slot, src, srcSlot)

	case kindValue:
		if len(fields) < 4 {
			onWarn("serialize: malformed value line, skipping: %v", fields)
			return nil
		}
		id, err := parseUint(fields[1])
		if err != nil {
			return err
		}
		slot, err := parseInt(fields[2])
		if err != nil {
			return err
		}
		v, err := decodeVariant(fields[3:])
		if err != nil {
			onWarn("serialize: malformed value payload, skipping: %v", err)
			return nil
		}
		return g.SetFixedInput(id, slot, v)

	case kindLink:
		if len(fields) < 3 {
			onWarn("serialize: malformed link line, skipping: %v", fields)
			return nil
		}
		from, err := parseUint(fields[1])
		if err != nil {
			return err
		}
		to, err := parseUint(fields[2])
		if err != nil {
			return err
		}
		return g.Link(from, to)

	default:
		onWarn("serialize: unknown line kind %q, skipping", fields[0])
		return nil
	}
}

func encodeVariant(v core.Variant) ([]string, error) {
	switch v.Kind() {
	case core.KindNil:
		return []string{"nil"}, nil
	case core.KindBool:
		return []string{"bool", strconv.FormatBool(v.Bool())}, nil
	case core.KindInt:
		return []string{"int", strconv.FormatInt(v.Int(), 10)}, nil
	case core.KindFloat:
		return []string{"float", formatFloat(v.Float())}, nil
	case core.KindVec2:
		vec := v.Vec2()
		return []string{"vec2", formatFloat(vec.X), formatFloat(vec.Y)}, nil
	default:
		return nil, fmt.Errorf("unknown variant kind %v", v.Kind())
	}
}

func decodeVariant(fields []string) (core.Variant, error) {
	if len(fields) == 0 {
		return core.Nil(), fmt.Errorf("empty value payload")
	}
	switch fields[0] {
	case "nil":
		return core.Nil(), nil
	case "bool":
		if len(fields) < 2 {
			return core.Nil(), fmt.Errorf("bool value missing payload")
		}
		b, err := strconv.ParseBool(fields[1])
		if err != nil {
			return core.Nil(), err
		}
		return core.Bool(b), nil
	case "int":
		if len(fields) < 2 {
			return core.Nil(), fmt.Errorf("int value missing payload")
		}
		i, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return core.Nil(), err
		}
		return core.Int(i), nil
	case "float":
		if len(fields) < 2 {
			return core.Nil(), fmt.Errorf("float value missing payload")
		}
		f, err := parseFloat(fields[1])
		if err != nil {
			return core.Nil(), err
		}
		return core.Float(f), nil
	case "vec2":
		if len(fields) < 3 {
			return core.Nil(), fmt.Errorf("vec2 value missing payload")
		}
		x, err := parseFloat(fields[1])
		if err != nil {
			return core.Nil(), err
		}
		y, err := parseFloat(fields[2])
		if err != nil {
			return core.Nil(), err
		}
		return core.MakeVec2(x, y), nil
	default:
		return core.Nil(), fmt.Errorf("unknown variant kind tag %q", fields[0])
	}
}

func formatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}

func parseFloat(s string) (float32, error) {
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, fmt.Errorf("parse float %q: %w", s, err)
	}
	return float32(f), nil
}

func parseUint(s string) (uint32, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("parse id %q: %w", s, err)
	}
	return uint32(n), nil
}

func parseInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("parse int %q: %w", s, err)
	}
	return n, nil
}
