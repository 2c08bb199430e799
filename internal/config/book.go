package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/nexiumfounders/subsplit/internal/models"
	"github.com/nexiumfounders/subsplit/internal/period"
)

// BookFile is the on-disk shape of a ledger book.
type BookFile struct {
	Currency     string               `yaml:"currency"`
	Participants []models.Participant `yaml:"participants"`
	Charges      []ChargeSpec         `yaml:"charges"`
}

// ChargeSpec is one recurring charge as written in the book file. Price is
// kept as a string so amounts like 99.99 are read exactly.
type ChargeSpec struct {
	ID              string `yaml:"id"`
	Name            string `yaml:"name"`
	Price           string `yaml:"price"`
	Start           string `yaml:"start"` // "YYYY-MM-DD" or "YYYY-MM"
	FirstPeriodFree bool   `yaml:"first_period_free"`
	DefaultPayer    string `yaml:"default_payer"`
}

// LoadBook reads and validates the book at path.
func LoadBook(path string) (models.Book, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Book{}, fmt.Errorf("failed to read book file: %w", err)
	}
	return ParseBook(data)
}

// ParseBook decodes and validates a YAML book.
func ParseBook(data []byte) (models.Book, error) {
	var file BookFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return models.Book{}, fmt.Errorf("failed to parse book file: %w", err)
	}
	return file.Book()
}

// Book converts the file into a validated models.Book.
func (f BookFile) Book() (models.Book, error) {
	var problems []string

	if len(f.Participants) < 2 {
		problems = append(problems, fmt.Sprintf("need at least 2 participants, got %d", len(f.Participants)))
	}
	participants := make(map[string]bool, len(f.Participants))
	for i, p := range f.Participants {
		switch {
		case p.ID == "":
			problems = append(problems, fmt.Sprintf("participant %d: id is required", i))
		case participants[p.ID]:
			problems = append(problems, fmt.Sprintf("participant %q: duplicate id", p.ID))
		}
		participants[p.ID] = true
	}

	charges := make([]models.RecurringCharge, 0, len(f.Charges))
	seen := make(map[string]bool, len(f.Charges))
	for i, cs := range f.Charges {
		label := cs.ID
		if label == "" {
			label = fmt.Sprintf("#%d", i)
		}
		if cs.ID == "" {
			problems = append(problems, fmt.Sprintf("charge %s: id is required", label))
		} else if seen[cs.ID] {
			problems = append(problems, fmt.Sprintf("charge %q: duplicate id", cs.ID))
		}
		seen[cs.ID] = true

		price, err := decimal.NewFromString(strings.TrimSpace(cs.Price))
		if err != nil {
			problems = append(problems, fmt.Sprintf("charge %s: invalid price %q", label, cs.Price))
		} else if price.IsNegative() {
			problems = append(problems, fmt.Sprintf("charge %s: price must not be negative", label))
		}

		start, err := period.ParseDate(strings.TrimSpace(cs.Start))
		if err != nil {
			problems = append(problems, fmt.Sprintf("charge %s: invalid start %q", label, cs.Start))
		}

		if !participants[cs.DefaultPayer] {
			problems = append(problems, fmt.Sprintf("charge %s: default payer %q is not a participant", label, cs.DefaultPayer))
		}

		name := cs.Name
		if name == "" {
			name = cs.ID
		}
		charges = append(charges, models.RecurringCharge{
			ID:              cs.ID,
			Name:            name,
			Price:           price,
			Start:           start,
			FirstPeriodFree: cs.FirstPeriodFree,
			DefaultPayer:    cs.DefaultPayer,
		})
	}

	if len(problems) > 0 {
		return models.Book{}, errors.New("invalid book:\n  - " + strings.Join(problems, "\n  - "))
	}

	for i, p := range f.Participants {
		if p.Name == "" {
			f.Participants[i].Name = p.ID
		}
	}
	return models.Book{
		Currency:     f.Currency,
		Participants: f.Participants,
		Charges:      charges,
	}, nil
}
