package game

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type nodeData struct {
	id        string
	x, y      float64
	neighbors []string
}

type levelData struct {
	name  string
	theme string
	nodes []nodeData
}

// GLOBAL DATA. Positions are percentages of the board area.
var levels = []levelData{
	{
		name:  "March",
		theme: "blue",
		nodes: []nodeData{
			{"1", 20, 50, []string{"2"}},
			{"2", 40, 50, []string{"1", "3", "4"}},
			{"3", 40, 20, []string{"2"}},
			{"4", 60, 50, []string{"2", "5", "6"}},
			{"5", 60, 80, []string{"4"}},
			{"6", 80, 50, []string{"4"}},
		},
	},
	{
		name:  "November",
		theme: "purple",
		nodes: []nodeData{
			{"1", 10, 30, []string{"2", "4"}},
			{"2", 25, 15, []string{"1", "3", "5"}},
			{"3", 45, 10, []string{"2", "6"}},
			{"4", 15, 55, []string{"1", "5", "9"}},
			{"5", 30, 40, []string{"2", "4", "6", "10"}},
			{"6", 50, 30, []string{"3", "5", "7", "11"}},
			{"7", 70, 20, []string{"6", "8"}},
			{"8", 90, 35, []string{"7", "12"}},
			{"9", 20, 80, []string{"4", "10"}},
			{"10", 40, 65, []string{"5", "9", "11", "13"}},
			{"11", 60, 55, []string{"6", "10", "12", "14"}},
			{"12", 80, 65, []string{"8", "11", "15"}},
			{"13", 45, 90, []string{"10", "14"}},
			{"14", 65, 85, []string{"11", "13", "15"}},
			{"15", 85, 90, []string{"12", "14"}},
		},
	},
	{
		name:  "Solstice",
		theme: "green",
		nodes: []nodeData{
			{"c", 50, 50, []string{"n", "s", "e", "w", "ne", "nw", "se", "sw"}},
			{"n", 50, 15, []string{"c", "nn"}},
			{"nn", 50, 0, []string{"n"}},
			{"s", 50, 85, []string{"c", "ss"}},
			{"ss", 50, 100, []string{"s"}},
			{"e", 85, 50, []string{"c", "ee"}},
			{"ee", 100, 50, []string{"e"}},
			{"w", 15, 50, []string{"c", "ww"}},
			{"ww", 0, 50, []string{"w"}},
			{"ne", 75, 25, []string{"c"}},
			{"nw", 25, 25, []string{"c"}},
			{"se", 75, 75, []string{"c"}},
			{"sw", 25, 75, []string{"c"}},
		},
	},
}

// NumLevels is the number of built-in levels.
func NumLevels() int {
	return len(levels)
}

// Level returns a fresh, empty copy of the built-in level at index (0-based).
func Level(index int) (*Layout, error) {
	if index < 0 || index >= len(levels) {
		return nil, fmt.Errorf("level %d out of range [0, %d)", index, len(levels))
	}
	data := levels[index]
	l := NewLayout(index+1, data.name, data.theme)
	for _, nd := range data.nodes {
		node := l.AddNode(nd.id, nd.x, nd.y)
		node.ConnectedTo = append(node.ConnectedTo, nd.neighbors...)
	}
	return l, nil
}

// Levels returns fresh copies of all built-in levels.
func Levels() []*Layout {
	layouts := make([]*Layout, len(levels))
	for i := range levels {
		layouts[i], _ = Level(i)
	}
	return layouts
}

// Grid builds a rows x cols board with orthogonal borders. Node IDs are
// "r<row>c<col>" and positions are spread over 0-100.
func Grid(rows, cols int) *Layout {
	l := NewLayout(0, fmt.Sprintf("Grid %dx%d", rows, cols), "indigo")
	id := func(r, c int) string {
		return "r" + strconv.Itoa(r) + "c" + strconv.Itoa(c)
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			l.AddNode(id(r, c), spread(c, cols), spread(r, rows))
		}
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if c+1 < cols {
				l.AddBorder(id(r, c), id(r, c+1))
			}
			if r+1 < rows {
				l.AddBorder(id(r, c), id(r+1, c))
			}
		}
	}
	return l
}

func spread(i, n int) float64 {
	if n <= 1 {
		return 50
	}
	return float64(i) * 100 / float64(n-1)
}

type layoutFile struct {
	Levels []*Layout `yaml:"levels"`
}

// LoadLayouts decodes a YAML document with a top-level "levels" list and
// validates every layout in it.
func LoadLayouts(r io.Reader) ([]*Layout, error) {
	var file layoutFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode layouts: %w", err)
	}
	if len(file.Levels) == 0 {
		return nil, fmt.Errorf("%w: no levels defined", ErrInvalidLayout)
	}
	for i, l := range file.Levels {
		if l.Level == 0 {
			l.Level = i + 1
		}
		if err := l.Validate(); err != nil {
			return nil, err
		}
	}
	return file.Levels, nil
}

// LoadLayoutsFile reads layouts from a YAML file.
func LoadLayoutsFile(path string) ([]*Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open layouts file: %w", err)
	}
	defer f.Close()
	return LoadLayouts(f)
}
