package shapes

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ThatOtherAndrew/Sketchmatch/internal/logging"
	"github.com/ThatOtherAndrew/Sketchmatch/internal/models"
)

var (
	ErrNotFound   = errors.New("shape not found")
	ErrEmptyShape = errors.New("shape needs at least 2 points")
)

// Set is an ordered collection of templates. Order is the play order.
type Set []models.Shape

func (s Set) Names() []string {
	names := make([]string, len(s))
	for i, shape := range s {
		names[i] = shape.Name
	}
	return names
}

func (s Set) Get(name string) (models.Shape, error) {
	for _, shape := range s {
		if shape.Name == name {
			return shape, nil
		}
	}
	return models.Shape{}, fmt.Errorf("%w: %s", ErrNotFound, name)
}

func Validate(shape models.Shape) error {
	if len(shape.Points) < 2 {
		return fmt.Errorf("%w: %q has %d", ErrEmptyShape, shape.Name, len(shape.Points))
	}
	return nil
}

type xmlDocument struct {
	Shapes []xmlShape `xml:"shape"`
}

type xmlShape struct {
	Name   string     `xml:"name,attr"`
	Points []xmlPoint `xml:"points>point"`
}

type xmlPoint struct {
	X string `xml:"x,attr"`
	Y string `xml:"y,attr"`
}

// ParseXML reads the shape config format:
//
//	<shapes>
//	  <shape name="square">
//	    <points><point x="0" y="0"/>...</points>
//	  </shape>
//	</shapes>
//
// Unnamed shapes are called shape-<index>.
func ParseXML(r io.Reader) (Set, error) {
	var doc xmlDocument
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode shapes xml: %w", err)
	}

	set := make(Set, 0, len(doc.Shapes))
	for i, s := range doc.Shapes {
		shape := models.Shape{Name: strings.TrimSpace(s.Name)}
		if shape.Name == "" {
			shape.Name = fmt.Sprintf("shape-%d", i)
		}
		for j, p := range s.Points {
			x, err := strconv.ParseFloat(strings.TrimSpace(p.X), 64)
			if err != nil {
				return nil, fmt.Errorf("shape %q point %d: x: %w", shape.Name, j, err)
			}
			y, err := strconv.ParseFloat(strings.TrimSpace(p.Y), 64)
			if err != nil {
				return nil, fmt.Errorf("shape %q point %d: y: %w", shape.Name, j, err)
			}
			shape.Points = append(shape.Points, models.Point{X: x, Y: y})
		}
		set = append(set, shape)
	}
	return set, nil
}

// LoadFile loads templates from an .xml shape config or a JSON array. A
// missing file is an empty set.
func LoadFile(path string) (Set, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Set{}, nil
		}
		return nil, err
	}
	defer f.Close()

	var set Set
	if strings.EqualFold(filepath.Ext(path), ".xml") {
		set, err = ParseXML(f)
	} else {
		err = json.NewDecoder(f).Decode(&set)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	for _, shape := range set {
		if err := Validate(shape); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	logging.Logger().Debug("loaded shapes", "path", path, "count", len(set))
	return set, nil
}

func SaveFile(path string, set Set) error {
	if strings.EqualFold(filepath.Ext(path), ".xml") {
		return fmt.Errorf("%s: saving xml shape configs is not supported", path)
	}
	data, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Upsert adds shape to the store at path, replacing any shape of the same name.
func Upsert(path string, shape models.Shape) error {
	if err := Validate(shape); err != nil {
		return err
	}
	set, err := LoadFile(path)
	if err != nil {
		return err
	}

	found := false
	for i, s := range set {
		if s.Name == shape.Name {
			set[i] = shape
			found = true
			break
		}
	}
	if !found {
		set = append(set, shape)
	}
	return SaveFile(path, set)
}

func Remove(path, name string) error {
	set, err := LoadFile(path)
	if err != nil {
		return err
	}

	for i, s := range set {
		if s.Name == name {
			set = append(set[:i], set[i+1:]...)
			return SaveFile(path, set)
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, name)
}
