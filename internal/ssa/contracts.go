package ssa

import (
	"go/types"

	"github.com/mpyw/cmpreflex/internal/rangeset"
	"github.com/mpyw/cmpreflex/internal/typeutil"
)

// =============================================================================
// Contracts
//
// A contract tells the interpreter what a call means without looking at the
// callee's body. Keys are typeutil.FuncName values, e.g. "strings.Compare"
// or "(*math/big.Int).Cmp".
// =============================================================================

// Contract classifies a callee.
type Contract int

const (
	// Unknown callees may do anything: their result is fresh and memory is clobbered.
	Unknown Contract = iota
	// Pure callees are deterministic and side-effect free.
	Pure
	// ZeroOnEqual callees are pure and return 0 when their first two arguments are equal.
	ZeroOnEqual
	// FalseOnEqual callees are pure and return false when their first two arguments are equal.
	FalseOnEqual
	// TrueOnEqual callees are pure and return true when their first two arguments are equal.
	TrueOnEqual
	// NoReturn callees never return to the caller.
	NoReturn
)

func (c Contract) String() string {
	switch c {
	case Pure:
		return "pure"
	case ZeroOnEqual:
		return "zero-on-equal"
	case FalseOnEqual:
		return "false-on-equal"
	case TrueOnEqual:
		return "true-on-equal"
	case NoReturn:
		return "no-return"
	}
	return "unknown"
}

// IsPure reports whether calls with this contract have no side effects.
func (c Contract) IsPure() bool {
	return c == Pure || c == ZeroOnEqual || c == FalseOnEqual || c == TrueOnEqual
}

type contractEntry struct {
	contract Contract
	result   rangeset.Set // extra bound on the result; empty means "type range"
}

// Contracts is a table of callee contracts.
type Contracts struct {
	byName map[string]contractEntry
}

// signResult is the range of functions documented to return -1, 0 or +1.
var signResult = rangeset.Of(-1, 1)

// DefaultContracts returns the contracts of the standard library functions
// commonly found in ordering functions.
func DefaultContracts() *Contracts {
	c := &Contracts{byName: make(map[string]contractEntry)}

	for _, name := range []string{
		"cmp.Compare",
		"strings.Compare",
		"bytes.Compare",
		"slices.Compare",
		"(time.Time).Compare",
		"(*math/big.Int).Cmp",
		"(*math/big.Int).CmpAbs",
		"(*math/big.Float).Cmp",
		"(*math/big.Rat).Cmp",
		"(net/netip.Addr).Compare",
		"(net/netip.Prefix).Compare",
	} {
		c.byName[name] = contractEntry{contract: ZeroOnEqual, result: signResult}
	}

	for _, name := range []string{
		"cmp.Less",
		"(time.Time).Before",
		"(time.Time).After",
		"(net/netip.Addr).Less",
	} {
		c.Add(name, FalseOnEqual)
	}

	for _, name := range []string{
		"bytes.Equal",
		"strings.EqualFold",
		"(time.Time).Equal",
	} {
		c.Add(name, TrueOnEqual)
	}

	for _, name := range []string{
		"strings.ToLower",
		"strings.ToUpper",
		"strings.ToTitle",
		"strings.TrimSpace",
		"strings.Trim",
		"strings.TrimPrefix",
		"strings.TrimSuffix",
		"strings.Count",
		"strings.Index",
		"strings.HasPrefix",
		"strings.HasSuffix",
		"strings.Contains",
		"bytes.Count",
		"unicode.ToLower",
		"unicode.ToUpper",
		"math.Abs",
		"math.Floor",
		"math.Ceil",
		"math.IsNaN",
		"math.Signbit",
		"strconv.Itoa",
		"strconv.FormatInt",
		"unicode/utf8.RuneCountInString",
		"(time.Time).Unix",
		"(time.Time).UnixNano",
		"(time.Time).UnixMilli",
		"(time.Time).IsZero",
		"(time.Time).Year",
		"(time.Time).YearDay",
		"(time.Duration).Seconds",
		"(time.Duration).Milliseconds",
		"(*math/big.Int).Sign",
		"(*math/big.Int).Int64",
		"(*math/big.Int).BitLen",
		"(net/netip.Addr).BitLen",
		"(net/netip.Addr).Is4",
		"(net/netip.Addr).Is6",
	} {
		c.Add(name, Pure)
	}

	for _, name := range []string{
		"os.Exit",
		"log.Fatal",
		"log.Fatalf",
		"log.Fatalln",
		"log.Panic",
		"log.Panicf",
		"log.Panicln",
		"(*log.Logger).Fatal",
		"(*log.Logger).Fatalf",
		"(*log.Logger).Fatalln",
		"(*log.Logger).Panic",
		"(*log.Logger).Panicf",
		"(*log.Logger).Panicln",
		"runtime.Goexit",
	} {
		c.Add(name, NoReturn)
	}

	return c
}

// Add registers name with contract k, replacing any previous entry.
func (c *Contracts) Add(name string, k Contract) {
	if c.byName == nil {
		c.byName = make(map[string]contractEntry)
	}
	c.byName[name] = contractEntry{contract: k}
}

// Lookup returns the contract of fn.
func (c *Contracts) Lookup(fn *types.Func) Contract {
	return c.LookupName(typeutil.FuncName(fn))
}

// LookupName returns the contract registered under name.
func (c *Contracts) LookupName(name string) Contract {
	if c == nil {
		return Unknown
	}
	return c.byName[name].contract
}

// resultBound returns the documented range of fn's result, or the empty
// set when there is none.
func (c *Contracts) resultBound(fn *types.Func) rangeset.Set {
	if c == nil {
		return rangeset.Empty()
	}
	return c.byName[typeutil.FuncName(fn)].result
}

// Len returns the number of registered contracts.
func (c *Contracts) Len() int {
	if c == nil {
		return 0
	}
	return len(c.byName)
}
