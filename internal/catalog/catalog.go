// Package catalog holds the static exercise table compiled into the binary.
package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/noah-isme/gema-css-lab/pkg/evaluator"
)

const schemaURL = "exercises.schema.json"

var (
	//go:embed exercises.yaml
	exercisesYAML []byte

	//go:embed exercises.schema.json
	exercisesSchema []byte
)

// ErrDuplicateExercise is returned when two exercises share an id.
var ErrDuplicateExercise = errors.New("duplicate exercise id")

// Exercise is one learning task: reference markup, a model answer and the
// material used to grade and coach the learner.
type Exercise struct {
	ID            string   `yaml:"id"`
	Title         string   `yaml:"title"`
	Topic         string   `yaml:"topic"`
	Difficulty    string   `yaml:"difficulty"`
	Description   string   `yaml:"description"`
	InitialHTML   string   `yaml:"initial_html"`
	SolutionCSS   string   `yaml:"solution_css"`
	LearningGoals []string `yaml:"learning_goals"`
	Hints         []string `yaml:"hints"`
	Probes        []string `yaml:"probes"`
}

// Grading returns the view of the exercise consumed by the evaluator.
func (e Exercise) Grading() evaluator.Exercise {
	return evaluator.Exercise{
		ID:            e.ID,
		InitialHTML:   e.InitialHTML,
		SolutionCSS:   e.SolutionCSS,
		LearningGoals: e.LearningGoals,
		Hints:         e.Hints,
		Probes:        e.Probes,
	}
}

type catalogFile struct {
	Exercises []Exercise `yaml:"exercises"`
}

// Catalog is an immutable, ordered set of exercises.
type Catalog struct {
	exercises []Exercise
	byID      map[string]int
}

// Load parses the embedded exercise table.
func Load() (*Catalog, error) {
	return Parse(exercisesYAML)
}

// Parse validates data against the catalog schema and builds a Catalog.
func Parse(data []byte) (*Catalog, error) {
	if err := validate(data); err != nil {
		return nil, err
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	c := &Catalog{
		exercises: make([]Exercise, 0, len(file.Exercises)),
		byID:      make(map[string]int, len(file.Exercises)),
	}
	for _, exercise := range file.Exercises {
		if _, exists := c.byID[exercise.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateExercise, exercise.ID)
		}
		c.byID[exercise.ID] = len(c.exercises)
		c.exercises = append(c.exercises, exercise)
	}

	return c, nil
}

func validate(data []byte) error {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(exercisesSchema)); err != nil {
		return fmt.Errorf("load catalog schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return fmt.Errorf("compile catalog schema: %w", err)
	}

	var document interface{}
	if err := yaml.Unmarshal(data, &document); err != nil {
		return fmt.Errorf("decode catalog: %w", err)
	}

	// Round-trip through JSON so the validator sees JSON value types.
	raw, err := json.Marshal(document)
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	var normalized interface{}
	if err := json.Unmarshal(raw, &normalized); err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}

	if err := schema.Validate(normalized); err != nil {
		return fmt.Errorf("invalid catalog: %w", err)
	}
	return nil
}

// List returns the exercises in catalog order.
func (c *Catalog) List() []Exercise {
	out := make([]Exercise, len(c.exercises))
	copy(out, c.exercises)
	return out
}

// Get looks an exercise up by id.
func (c *Catalog) Get(id string) (Exercise, bool) {
	index, ok := c.byID[id]
	if !ok {
		return Exercise{}, false
	}
	return c.exercises[index], true
}

// Len reports the number of exercises.
func (c *Catalog) Len() int {
	return len(c.exercises)
}

// Topics returns the distinct topics, sorted.
func (c *Catalog) Topics() []string {
	seen := make(map[string]struct{})
	topics := make([]string, 0)
	for _, exercise := range c.exercises {
		if exercise.Topic == "" {
			continue
		}
		if _, ok := seen[exercise.Topic]; ok {
			continue
		}
		seen[exercise.Topic] = struct{}{}
		topics = append(topics, exercise.Topic)
	}
	sort.Strings(topics)
	return topics
}
