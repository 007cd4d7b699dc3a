package testdata

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"

	"github.com/themizzi/shopcheck/internal/api"
)

// Generator produces randomized fixture values. Values come from a
// non-cryptographic source, so RandomEmail and friends can collide across a
// large run; use UniqueEmail when a collision would break the test.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator returns a generator over the given source. A nil source uses
// the process-wide random source.
func NewGenerator(src rand.Source) *Generator {
	g := &Generator{}
	if src != nil {
		g.rng = rand.New(src)
	}
	return g
}

// intRange returns a value in [lo, hi]
func (g *Generator) intRange(lo, hi int) int {
	if g.rng == nil {
		return lo + rand.IntN(hi-lo+1)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return lo + g.rng.IntN(hi-lo+1)
}

// RandomEmail returns an address of the form test####@example.com
func (g *Generator) RandomEmail() string {
	return fmt.Sprintf("test%d@example.com", g.intRange(1000, 9999))
}

// RandomName returns a name of the form TestUser###
func (g *Generator) RandomName() string {
	return fmt.Sprintf("TestUser%d", g.intRange(100, 999))
}

// RandomPassword returns a password of the form pass###
func (g *Generator) RandomPassword() string {
	return fmt.Sprintf("pass%d", g.intRange(100, 999))
}

// UniqueEmail returns an address that will not repeat within or across runs
func (g *Generator) UniqueEmail() string {
	return "test-" + uuid.NewString() + "@example.com"
}

// RandomUser returns a complete account with a unique email, built on the
// sample user's address details
func (g *Generator) RandomUser() api.Account {
	account := Default().SampleUser
	account.Name = g.RandomName()
	account.Email = g.UniqueEmail()
	account.Password = g.RandomPassword()
	return account
}
