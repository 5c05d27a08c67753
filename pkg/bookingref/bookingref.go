package bookingref

import (
	"crypto/rand"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	prefix     = "BK"
	suffixLen  = 6
	dateLayout = "20060102"
)

var pattern = regexp.MustCompile(`^BK-\d{8}-[0-9A-F]{6}$`)

// Generator produces booking references in the form BK-YYYYMMDD-XXXXXX
type Generator struct {
	now    func() time.Time
	random io.Reader
}

// Option configures a Generator
type Option func(*Generator)

// WithClock sets the clock used for the date stamp
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithRandom sets the random source used for the suffix
func WithRandom(r io.Reader) Option {
	return func(g *Generator) { g.random = r }
}

// NewGenerator creates a generator using the wall clock and crypto/rand
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{now: time.Now, random: rand.Reader}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns a new reference stamped with the current date
func (g *Generator) Generate() (string, error) {
	return g.GenerateFor(g.now())
}

// GenerateFor returns a new reference stamped with the date of t
func (g *Generator) GenerateFor(t time.Time) (string, error) {
	id, err := uuid.NewRandomFromReader(g.random)
	if err != nil {
		return "", fmt.Errorf("bookingref: generate suffix: %w", err)
	}
	suffix := strings.ToUpper(strings.ReplaceAll(id.String(), "-", ""))[:suffixLen]
	return fmt.Sprintf("%s-%s-%s", prefix, t.Format(dateLayout), suffix), nil
}

// IsValid reports whether ref has the reference format
func IsValid(ref string) bool {
	return pattern.MatchString(ref)
}

// Normalize trims and upper-cases a reference typed by a customer
func Normalize(ref string) string {
	return strings.ToUpper(strings.TrimSpace(ref))
}
