// Package preprocessing prepares raw predictor tables for regression.
//
// The single concern here is categorical ("varchar") handling: text-valued
// columns cannot enter a design matrix directly and are either dropped or
// expanded into 0/1 indicator columns according to a VarcharPolicy. After
// encoding, a constant intercept column is prepended so the result can be
// fitted without further preparation.
package preprocessing

import (
	"fmt"
	"sort"

	"github.com/sthascelik/stepwise/core/frame"
	"github.com/sthascelik/stepwise/pkg/log"
)

// VarcharPolicy selects how categorical columns are encoded.
type VarcharPolicy string

const (
	// VarcharDrop removes every categorical column.
	VarcharDrop VarcharPolicy = "drop"
	// VarcharDummy expands each categorical column into one indicator
	// column per distinct level.
	VarcharDummy VarcharPolicy = "dummy"
	// VarcharDummyDropFirst expands each categorical column into
	// indicator columns, omitting the first (lexicographically smallest)
	// level as the reference level. This is the default: keeping all
	// levels alongside an intercept makes the design matrix singular.
	VarcharDummyDropFirst VarcharPolicy = "dummy_dropfirst"
)

// ParseVarcharPolicy maps a free-form string onto a VarcharPolicy.
// Unrecognized values fall back to VarcharDummyDropFirst with a warning,
// matching the lenient behavior of the selection entry points.
func ParseVarcharPolicy(s string) VarcharPolicy {
	switch VarcharPolicy(s) {
	case VarcharDrop, VarcharDummy, VarcharDummyDropFirst:
		return VarcharPolicy(s)
	}
	log.GetLoggerWithName("preprocessing").Warn("Unrecognized varchar policy, using dummy_dropfirst",
		log.OperationKey, log.OperationEncode,
		"policy", s,
	)
	return VarcharDummyDropFirst
}

// EncodeVarchar applies the policy to every categorical column of X and
// returns a fully numeric frame with a constant "intercept" column in
// front. Numeric columns are carried over unchanged, in order. An
// unrecognized policy behaves as VarcharDummyDropFirst.
//
// Indicator columns are named column_level and hold 1 where the source
// row equals that level. With VarcharDummyDropFirst the smallest level of
// each column produces no indicator.
func EncodeVarchar(X *frame.Frame, policy VarcharPolicy) (*frame.Frame, error) {
	logger := log.GetLoggerWithName("preprocessing").With(
		log.ComponentKey, "varchar",
	)

	switch policy {
	case VarcharDrop, VarcharDummy, VarcharDummyDropFirst:
	default:
		logger.Warn("Unrecognized varchar policy, using dummy_dropfirst", "policy", string(policy))
		policy = VarcharDummyDropFirst
	}

	out := frame.New()
	var categorical []string

	for _, name := range X.Columns() {
		if !X.IsCategorical(name) {
			vals, err := X.Numeric(name)
			if err != nil {
				return nil, err
			}
			if err := out.AddNumeric(name, vals); err != nil {
				return nil, err
			}
			continue
		}

		categorical = append(categorical, name)
		if policy == VarcharDrop {
			continue
		}

		vals, err := X.Strings(name)
		if err != nil {
			return nil, err
		}
		levels := distinctLevels(vals)
		if policy == VarcharDummyDropFirst && len(levels) > 0 {
			levels = levels[1:]
		}
		for _, level := range levels {
			indicator := make([]float64, len(vals))
			for i, v := range vals {
				if v == level {
					indicator[i] = 1
				}
			}
			if err := out.AddNumeric(fmt.Sprintf("%s_%s", name, level), indicator); err != nil {
				return nil, err
			}
		}
	}

	ones := make([]float64, X.NumRows())
	for i := range ones {
		ones[i] = 1
	}
	if err := out.AddNumeric(frame.InterceptColumn, ones); err != nil {
		return nil, err
	}
	if err := out.MoveToFront(frame.InterceptColumn); err != nil {
		return nil, err
	}

	switch policy {
	case VarcharDrop:
		logger.Info("Character variables dropped",
			log.OperationKey, log.OperationEncode, "columns", categorical)
	case VarcharDummy:
		logger.Info("Character variables expanded to dummies",
			log.OperationKey, log.OperationEncode, "columns", categorical)
	default:
		logger.Info("Character variables expanded to dummies, first levels dropped",
			log.OperationKey, log.OperationEncode, "columns", categorical)
	}

	return out, nil
}

func distinctLevels(vals []string) []string {
	seen := make(map[string]bool)
	for _, v := range vals {
		seen[v] = true
	}
	levels := make([]string, 0, len(seen))
	for v := range seen {
		levels = append(levels, v)
	}
	sort.Strings(levels)
	return levels
}
