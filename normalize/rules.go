package normalize

import (
	"io/ioutil"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Rules holds the value cleanup tables. The tables are data, not logic:
// deployments tune them per map extract with a YAML file, after reviewing
// the audit reports.
type Rules struct {
	Street    []Replacement `yaml:"street"`
	Phones    PhoneRules    `yaml:"phone"`
	Postcodes PostcodeRules `yaml:"postcode"`
}

// Replacement expands one street suffix abbreviation. Order matters:
// longer abbreviations must come before their prefixes ("St." before "St")
// and the single-letter directionals go last.
type Replacement struct {
	Abbr string `yaml:"abbr"`
	Full string `yaml:"full"`
}

type PhoneRules struct {
	// Corrections maps known malformed literals to their full number.
	Corrections map[string]string `yaml:"corrections"`
	// Strip lists substrings removed from all other values, in order.
	Strip []string `yaml:"strip"`
	// MaxLen truncates the stripped value.
	MaxLen int `yaml:"max_len"`
}

type PostcodeRules struct {
	Corrections map[string]string `yaml:"corrections"`
	// Length forces the code length by truncating or zero-padding.
	Length int `yaml:"length"`
}

// Default returns the built-in rule tables, derived from auditing
// DC/Maryland area extracts.
func Default() *Rules {
	return &Rules{
		Street: []Replacement{
			{"St.", "Street"},
			{"St", "Street"},
			{"Ave.", "Avenue"},
			{"Ave", "Avenue"},
			{"ave", "Avenue"},
			{"Rd.", "Road"},
			{`Rd\`, "Road"},
			{"Rd", "Road"},
			{"RD", "Road"},
			{"rd", "Road"},
			{"Blvd", "Boulevard"},
			{"Dr.", "Drive"},
			{"Dr", "Drive"},
			{"Ln.", "Lane"},
			{"Cir", "Circle"},
			{"Ct", "Court"},
			{"Pl", "Place"},
			{"Ter", "Terrace"},
			{"N.W.", "Northwest"},
			{"n.w.", "Northwest"},
			{"NW", "Northwest"},
			{"NE", "Northeast"},
			{"E", "East"},
			{"W", "West"},
			{"N", "North"},
		},
		Phones: PhoneRules{
			Corrections: map[string]string{
				"+1 866-RIDMTA": "8667433682",
				"+13192881":     "2023192881",
				"649 3555":      "3016493555",
			},
			Strip: []string{
				"New Customer: ",
				"Susanna Farm Nursery: ",
				"tel:",
				"+1 ",
				"+1",
				"-",
				" ",
				".",
				"(",
				")",
			},
			MaxLen: 10,
		},
		Postcodes: PostcodeRules{
			Corrections: map[string]string{
				"2011": "20011",
				"2005": "20005",
			},
			Length: 5,
		},
	}
}

// FromFile loads rules from a YAML file. Sections missing from the file
// keep their built-in defaults.
func FromFile(filename string) (*Rules, error) {
	b, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	loaded := Rules{}
	if err := yaml.Unmarshal(b, &loaded); err != nil {
		return nil, errors.Wrapf(err, "parsing rules file %s", filename)
	}
	rules := Default()
	if loaded.Street != nil {
		rules.Street = loaded.Street
	}
	if loaded.Phones.Corrections != nil || loaded.Phones.Strip != nil {
		if loaded.Phones.MaxLen == 0 {
			loaded.Phones.MaxLen = rules.Phones.MaxLen
		}
		rules.Phones = loaded.Phones
	}
	if loaded.Postcodes.Corrections != nil || loaded.Postcodes.Length != 0 {
		if loaded.Postcodes.Length == 0 {
			loaded.Postcodes.Length = rules.Postcodes.Length
		}
		rules.Postcodes = loaded.Postcodes
	}
	return rules, nil
}
