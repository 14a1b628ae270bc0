package stl

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/philipparndt/gosplit/pkg/geometry"
)

// Format selects the STL encoding written by Write
type Format string

const (
	FormatBinary Format = "binary"
	FormatASCII  Format = "ascii"
)

// ParseFormat accepts the names used on the command line
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case "", FormatBinary:
		return FormatBinary, nil
	case FormatASCII:
		return FormatASCII, nil
	}
	return "", fmt.Errorf("unknown STL format %q (binary, ascii)", s)
}

// Write encodes the model in the given format
func Write(w io.Writer, model *Model, format Format) error {
	switch format {
	case FormatASCII:
		return writeASCII(w, model)
	case FormatBinary, "":
		return writeBinary(w, model)
	}
	return fmt.Errorf("unknown STL format %q", format)
}

// WriteFile creates or truncates filename and writes the model to it
func WriteFile(filename string, model *Model, format Format) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := Write(file, model, format); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func writeBinary(w io.Writer, model *Model) error {
	bw := bufio.NewWriter(w)

	header := make([]byte, headerSize)
	copy(header, model.Name)
	if _, err := bw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(model.Triangles))); err != nil {
		return fmt.Errorf("failed to write triangle count: %w", err)
	}

	var facet struct {
		Normal, V1, V2, V3 [3]float32
		Attribute          uint16
	}
	for i, t := range model.Triangles {
		facet.Normal = toFloat32(t.Normal)
		facet.V1, facet.V2, facet.V3 = toFloat32(t.V1), toFloat32(t.V2), toFloat32(t.V3)
		if err := binary.Write(bw, binary.LittleEndian, &facet); err != nil {
			return fmt.Errorf("failed to write triangle %d: %w", i, err)
		}
	}
	return bw.Flush()
}

func writeASCII(w io.Writer, model *Model) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "solid %s\n", model.Name)
	for _, t := range model.Triangles {
		fmt.Fprintf(bw, "  facet normal %g %g %g\n", t.Normal.X, t.Normal.Y, t.Normal.Z)
		fmt.Fprintln(bw, "    outer loop")
		for _, p := range [3]geometry.Vector3{t.V1, t.V2, t.V3} {
			fmt.Fprintf(bw, "      vertex %g %g %g\n", p.X, p.Y, p.Z)
		}
		fmt.Fprintln(bw, "    endloop")
		fmt.Fprintln(bw, "  endfacet")
	}
	fmt.Fprintf(bw, "endsolid %s\n", model.Name)
	return bw.Flush()
}

func toFloat32(v geometry.Vector3) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}
