package evaluator

import (
	"context"
	"fmt"

	"github.com/PaesslerAG/gval"
	"go.uber.org/zap"
)

// AlarmLevel is the alert raised from the number of out-of-tunnel seconds
type AlarmLevel string

const (
	AlarmNone   AlarmLevel = "none"
	AlarmYellow AlarmLevel = "yellow"
	AlarmRed    AlarmLevel = "red"
)

const (
	// DefaultYellowRule raises a yellow alert after more than 5 seconds of deviation
	DefaultYellowRule = "violations > 5"
	// DefaultRedRule raises a red alert after more than 15 seconds of deviation
	DefaultRedRule = "violations > 15"
)

var alarmLanguage = gval.Full()

// AlarmRules evaluates boolean expressions against a health assessment.
// Expressions can use the variables "violations", "score" and "samples".
type AlarmRules struct {
	yellowExpr string
	redExpr    string
	yellow     gval.Evaluable
	red        gval.Evaluable
}

// NewAlarmRules compiles the yellow and red rule expressions
func NewAlarmRules(yellowExpr, redExpr string) (*AlarmRules, error) {
	yellow, err := alarmLanguage.NewEvaluable(yellowExpr)
	if err != nil {
		return nil, fmt.Errorf("invalid yellow alarm rule %q: %w", yellowExpr, err)
	}
	red, err := alarmLanguage.NewEvaluable(redExpr)
	if err != nil {
		return nil, fmt.Errorf("invalid red alarm rule %q: %w", redExpr, err)
	}
	return &AlarmRules{
		yellowExpr: yellowExpr,
		redExpr:    redExpr,
		yellow:     yellow,
		red:        red,
	}, nil
}

// DefaultAlarmRules returns the rules shown on the overview alarm card
func DefaultAlarmRules() *AlarmRules {
	rules, err := NewAlarmRules(DefaultYellowRule, DefaultRedRule)
	if err != nil {
		panic(err)
	}
	return rules
}

// Expressions returns the source of the yellow and red rules
func (r *AlarmRules) Expressions() (string, string) {
	return r.yellowExpr, r.redExpr
}

// Evaluate returns the highest alarm level whose rule holds.
// A rule that fails to evaluate is logged and treated as not raised.
func (r *AlarmRules) Evaluate(health HealthAssessment, samples int) AlarmLevel {
	parameters := map[string]interface{}{
		"violations": float64(health.ViolationCount),
		"score":      float64(health.Score),
		"samples":    float64(samples),
	}

	if r.raised(r.red, r.redExpr, parameters) {
		return AlarmRed
	}
	if r.raised(r.yellow, r.yellowExpr, parameters) {
		return AlarmYellow
	}
	return AlarmNone
}

func (r *AlarmRules) raised(rule gval.Evaluable, expr string, parameters map[string]interface{}) bool {
	ok, err := rule.EvalBool(context.Background(), parameters)
	if err != nil {
		zap.L().Warn("Alarm rule evaluation failed", zap.String("rule", expr), zap.Error(err))
		return false
	}
	return ok
}
