// Package pdb reads atomic coordinate models from PDB structure files and
// provides declarative atom selection over them.
package pdb

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path"
	"strconv"
	"strings"
)

// ParseError reports an absent or malformed structure file.
type ParseError struct {
	Path string
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("pdb: %s: %s: %v", e.Path, e.Msg, e.Err)
	}
	return fmt.Sprintf("pdb: %s: %s", e.Path, e.Msg)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Atom is a single ATOM record: serial number, atom name, the residue it
// belongs to (three letter code and sequence number), its chain identifier
// and its coordinates.
type Atom struct {
	Serial     int
	Name       string
	Residue    string
	ResidueInd int
	Chain      byte

	// Coords is a triple where the first element is X, the second is Y and
	// the third is Z.
	Coords [3]float64
}

func (a Atom) String() string {
	return fmt.Sprintf("(%d, %s, %d, %s, %c, [%0.4f %0.4f %0.4f])",
		a.Serial, a.Name, a.ResidueInd, a.Residue, a.Chain,
		a.Coords[0], a.Coords[1], a.Coords[2])
}

// Atoms names a slice of Atom.
type Atoms []Atom

// Structure is one ensemble member: the ordered ATOM records of a structure
// file. It is immutable after Load returns it.
type Structure struct {
	Path  string
	Atoms Atoms
}

// Name returns the base name of the path of this structure.
func (s *Structure) Name() string { return path.Base(s.Path) }

// Load reads a structure file into a Structure. If the file cannot be read,
// or it contains no ATOM records, a *ParseError is returned.
//
// If the file name ends with ".gz", gzip decompression is used.
func Load(fileName string) (*Structure, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, &ParseError{Path: fileName, Msg: "cannot open", Err: err}
	}
	defer f.Close()

	var reader io.Reader = f
	if path.Ext(fileName) == ".gz" {
		reader, err = gzip.NewReader(f)
		if err != nil {
			return nil, &ParseError{Path: fileName, Msg: "bad gzip stream", Err: err}
		}
	}

	s := &Structure{
		Path:  fileName,
		Atoms: make(Atoms, 0, 500),
	}

	breader := bufio.NewReaderSize(reader, 1000)
	for {
		// We ignore 'isPrefix' here, since we never care about lines longer
		// than 1000 characters, which is the size of our buffer.
		line, _, err := breader.ReadLine()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, &ParseError{Path: fileName, Msg: "read failed", Err: err}
		}

		// The record name is always in the first six columns.
		if len(line) < 6 || strings.TrimSpace(string(line[0:6])) != "ATOM" {
			continue
		}
		atom, err := parseAtom(line)
		if err != nil {
			return nil, &ParseError{Path: fileName, Msg: err.Error()}
		}
		s.Atoms = append(s.Atoms, atom)
	}

	// A structure file without a single ATOM record isn't usable as an
	// ensemble member.
	if len(s.Atoms) == 0 {
		return nil, &ParseError{Path: fileName, Msg: "no ATOM records found"}
	}
	return s, nil
}

// parseAtom reads one fixed-column ATOM record. The serial number lives in
// columns 6-10, the atom name in 12-15, the residue name in 17-19, the chain
// identifier in column 21, the residue sequence number in 22-25 and the
// coordinates in 30-37 (x), 38-45 (y) and 46-53 (z).
func parseAtom(line []byte) (Atom, error) {
	if len(line) < 54 {
		return Atom{}, fmt.Errorf("ATOM record too short (%d columns)", len(line))
	}

	atom := Atom{
		Name:    strings.TrimSpace(string(line[12:16])),
		Residue: strings.TrimSpace(string(line[17:20])),
		Chain:   line[21],
	}
	if atom.Chain == ' ' {
		atom.Chain = '_'
	}

	serial := strings.TrimSpace(string(line[6:11]))
	if n, err := strconv.ParseInt(serial, 10, 32); err == nil {
		atom.Serial = int(n)
	}

	snum := strings.TrimSpace(string(line[22:26]))
	n, err := strconv.ParseInt(snum, 10, 32)
	if err != nil {
		return Atom{}, fmt.Errorf("bad residue sequence number %q", snum)
	}
	atom.ResidueInd = int(n)

	for i, span := range [3][2]int{{30, 38}, {38, 46}, {46, 54}} {
		str := strings.TrimSpace(string(line[span[0]:span[1]]))
		v, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return Atom{}, fmt.Errorf("bad coordinate %q", str)
		}
		atom.Coords[i] = v
	}
	return atom, nil
}
