// Package dice rolls single dice and evaluates dice formulas such as
// "2d6+1d4*2-3".
//
// A Roller owns its random source, so results are reproducible for a given
// seed. Multiplication and division bind tighter than addition and
// subtraction; division truncates toward zero.
package dice

import (
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"sync"
)

const (
	maxDice  = 100
	maxSides = 1000
)

var (
	ErrInvalidSides = errors.New("dice must have at least one side")
	ErrEmptyFormula = errors.New("formula has no terms")
	ErrInvalidDice  = errors.New("invalid dice")
	ErrTooBig       = fmt.Errorf("too big: max %d dice, %d sides", maxDice, maxSides)
	ErrDivideByZero = errors.New("division by zero")
	ErrSyntax       = errors.New("operator without left operand")
)

var (
	tokenRegex = regexp.MustCompile(`(?i)(\d*d\d+|\d+|[+\-*/])`)
	diceRegex  = regexp.MustCompile(`(?i)^(\d*)d(\d+)$`)
	validOps   = map[string]bool{"+": true, "-": true, "*": true, "/": true}
)

// Roller is safe for concurrent use.
type Roller struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRoller returns a roller seeded with seed.
func NewRoller(seed int64) *Roller {
	return &Roller{rng: rand.New(rand.NewSource(seed))}
}

// Die rolls one die with the given number of sides, returning 1..sides.
func (r *Roller) Die(sides int) (int, error) {
	if sides < 1 {
		return 0, ErrInvalidSides
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(sides) + 1, nil
}

// Result is an evaluated formula.
type Result struct {
	Input       string
	Calculation string
	Total       int
}

type term struct {
	value int
	desc  string
	op    string
}

// Formula evaluates a dice formula. Spaces are ignored.
func (r *Roller) Formula(formula string) (Result, error) {
	formula = strings.ReplaceAll(formula, " ", "")
	tokens := tokenRegex.FindAllString(formula, -1)
	if len(tokens) == 0 {
		return Result{}, ErrEmptyFormula
	}
	if strings.Join(tokens, "") != formula {
		return Result{}, fmt.Errorf("%w: %q", ErrInvalidDice, formula)
	}

	var terms []term
	currentOp := "+"
	for _, token := range tokens {
		if validOps[token] {
			currentOp = token
			continue
		}
		val, desc, err := r.evaluateToken(token)
		if err != nil {
			return Result{}, fmt.Errorf("evaluate %s: %w", token, err)
		}
		terms = append(terms, term{value: val, desc: desc, op: currentOp})
		currentOp = "+"
	}
	if len(terms) == 0 {
		return Result{}, ErrEmptyFormula
	}

	// * and / first
	var merged []term
	for _, t := range terms {
		if t.op != "*" && t.op != "/" {
			merged = append(merged, t)
			continue
		}
		if len(merged) == 0 {
			return Result{}, ErrSyntax
		}
		prev := merged[len(merged)-1]
		merged = merged[:len(merged)-1]

		var newVal int
		switch t.op {
		case "*":
			newVal = prev.value * t.value
		case "/":
			if t.value == 0 {
				return Result{}, ErrDivideByZero
			}
			newVal = prev.value / t.value
		}
		merged = append(merged, term{
			value: newVal,
			desc:  fmt.Sprintf("%s %s %s", prev.desc, t.op, t.desc),
			op:    prev.op,
		})
	}

	// + and -
	total := 0
	var details []string
	for _, t := range merged {
		if len(details) > 0 {
			details = append(details, fmt.Sprintf(" %s ", t.op))
		} else if t.op == "-" {
			details = append(details, "-")
		}
		details = append(details, t.desc)
		if t.op == "-" {
			total -= t.value
		} else {
			total += t.value
		}
	}

	return Result{
		Input:       formula,
		Calculation: strings.Join(details, ""),
		Total:       total,
	}, nil
}

func (r *Roller) evaluateToken(token string) (int, string, error) {
	if m := diceRegex.FindStringSubmatch(token); m != nil {
		count := 1
		if m[1] != "" {
			n, err := strconv.Atoi(m[1])
			if err != nil || n < 1 {
				return 0, "", ErrInvalidDice
			}
			count = n
		}
		sides, err := strconv.Atoi(m[2])
		if err != nil || sides < 2 {
			return 0, "", ErrInvalidDice
		}
		if count > maxDice || sides > maxSides {
			return 0, "", ErrTooBig
		}

		r.mu.Lock()
		sum := 0
		rolls := make([]string, count)
		for i := range rolls {
			v := r.rng.Intn(sides) + 1
			sum += v
			rolls[i] = strconv.Itoa(v)
		}
		r.mu.Unlock()
		return sum, fmt.Sprintf("`%s` [%s]", token, strings.Join(rolls, ", ")), nil
	}

	num, err := strconv.Atoi(token)
	if err != nil {
		return 0, "", ErrInvalidDice
	}
	return num, fmt.Sprintf("`%d`", num), nil
}
