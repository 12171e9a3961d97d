// Package generator synthesizes fake customer records. All identity numbers
// are synthetic and only look plausible; nothing generated here passes real
// checksum rules. Randomness flows through an explicit seedable source so a
// run can be reproduced.
package generator

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v5"

	jsoniter "github.com/json-iterator/go"

	"github.com/goliatone/go-custdoc/pkg/config"
	"github.com/goliatone/go-custdoc/pkg/validation"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const adultAge = 18

// Singapore planning areas used as cities when the configured country is SG.
var sgCities = []string{
	"Central Area", "Bukit Timah", "Jurong East", "Jurong West", "Tampines",
	"Bedok", "Hougang", "Yishun", "Punggol", "Sengkang", "Toa Payoh",
	"Ang Mo Kio", "Woodlands", "Bukit Panjang", "Queenstown", "Clementi",
	"Marine Parade", "Serangoon", "Pasir Ris", "Choa Chu Kang",
}

var genders = []string{"Male", "Female", "Other", "Prefer not to say"}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed fixes both the record RNG and the faker RNG so generation is
// reproducible.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewSource(seed))
		g.faker = gofakeit.New(uint64(seed))
	}
}

// WithNow overrides the clock used for date-of-birth and expiry generation.
func WithNow(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// Generator produces customer records that satisfy the supplied schema.
type Generator struct {
	rng    *rand.Rand
	faker  *gofakeit.Faker
	schema *jsonschema.Schema
	cons   config.Constraints
	now    func() time.Time
}

// New builds a generator. Without WithSeed, generation is time-seeded.
func New(schema *jsonschema.Schema, cons config.Constraints, opts ...Option) *Generator {
	seed := time.Now().UnixNano()
	gen := &Generator{
		rng:    rand.New(rand.NewSource(seed)),
		faker:  gofakeit.New(uint64(seed)),
		schema: schema,
		cons:   cons,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(gen)
	}
	return gen
}

// Generate synthesizes one record and validates it against the schema.
// Validation failure aborts this record and surfaces the failing field
// paths; callers treat it as fatal for the run.
func (g *Generator) Generate() (map[string]any, error) {
	today := dateOnly(g.now())

	country := g.cons.Country
	var city string
	if country == "SG" {
		city = sgCities[g.rng.Intn(len(sgCities))]
	} else {
		if country == "" {
			country = g.faker.CountryAbr()
		}
		city = g.faker.City()
	}

	name := g.faker.FirstName() + " " + g.faker.LastName()
	nationality := g.cons.Nationality
	if nationality == "" {
		nationality = country
	}
	address := singleLine(g.faker.Address().Address)

	dob := g.randomDOB(today)
	age := ageAt(dob, today)

	personal := map[string]any{
		"name":          name,
		"nationality":   nationality,
		"date_of_birth": dob.Format("2006-01-02"),
		"address":       address,
	}
	demographics := map[string]any{
		"age":     age,
		"gender":  genders[g.rng.Intn(len(genders))],
		"country": country,
		"city":    city,
	}

	customer := map[string]any{
		"customer_id":      g.newID(),
		"personal_details": personal,
		"demographics":     demographics,
	}

	idDocuments := map[string]any{}
	if country == "SG" {
		idDocuments["nric"] = map[string]any{
			"nric_number": g.nricNumber(),
			"nationality": nationality,
			"address":     address,
		}
	}
	if g.rng.Float64() < passportProbability(age) {
		idDocuments["passport"] = map[string]any{
			"passport_number": g.passportNumber(),
			"nationality":     nationality,
			"expiry_date":     g.passportExpiry(today).Format("2006-01-02"),
			"issuing_country": country,
		}
	}
	if len(idDocuments) > 0 {
		customer["id_documents"] = idDocuments
	}

	if age >= adultAge {
		customer["financials"] = g.financials(country)
	}

	record, err := normalize(customer)
	if err != nil {
		return nil, err
	}
	if err := validation.Validate(g.schema, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Most adults carry a passport; minors may, but less often.
func passportProbability(age int) float64 {
	if age >= adultAge {
		return 0.95
	}
	return 0.6
}

// randomDOB picks a date of birth so the age at `today` lies inclusively
// within the configured bounds.
func (g *Generator) randomDOB(today time.Time) time.Time {
	// AddDate normalizes nonexistent dates forward (Feb 29 minus a year is
	// Mar 1), which would put `latest` past the min-age bound. Clamp both
	// endpoints back onto the bound.
	latest := today.AddDate(-g.cons.MinAge, 0, 0)
	for ageAt(latest, today) < g.cons.MinAge {
		latest = latest.AddDate(0, 0, -1)
	}
	earliest := today.AddDate(-(g.cons.MaxAge + 1), 0, 0).AddDate(0, 0, 1)
	for ageAt(earliest, today) > g.cons.MaxAge {
		earliest = earliest.AddDate(0, 0, 1)
	}
	span := int(latest.Sub(earliest).Hours() / 24)
	if span <= 0 {
		return latest
	}
	return earliest.AddDate(0, 0, g.rng.Intn(span+1))
}

func ageAt(dob, today time.Time) int {
	years := today.Year() - dob.Year()
	if today.Month() < dob.Month() ||
		(today.Month() == dob.Month() && today.Day() < dob.Day()) {
		years--
	}
	return years
}

func (g *Generator) passportExpiry(today time.Time) time.Time {
	// Between one and ten years out.
	start := today.AddDate(1, 0, 0)
	end := today.AddDate(10, 0, 0)
	span := int(end.Sub(start).Hours() / 24)
	return start.AddDate(0, 0, g.rng.Intn(span+1))
}

func (g *Generator) newID() string {
	id, err := uuid.NewRandomFromReader(g.rng)
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func singleLine(s string) string {
	return strings.ReplaceAll(s, "\n", ", ")
}

// normalize round-trips the record through JSON so every value carries the
// decoded-JSON types the schema engine and the renderers expect.
func normalize(customer map[string]any) (map[string]any, error) {
	data, err := json.Marshal(customer)
	if err != nil {
		return nil, fmt.Errorf("generator: marshal record: %w", err)
	}
	record := map[string]any{}
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("generator: normalize record: %w", err)
	}
	return record, nil
}
