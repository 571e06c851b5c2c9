package search

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/kioku/internal/domain"
	"github.com/alexanderramin/kioku/internal/grouping"
)

// SortOrder is the user-selectable grouping of search results.
type SortOrder int

const (
	OrderType SortOrder = iota
	OrderLevelType
	OrderAvailableAtType
	OrderStageType
)

var orderInfo = [...]struct {
	description string
	singleLevel bool
}{
	OrderType:            {"Type", true},
	OrderLevelType:       {"Level, Type", false},
	OrderAvailableAtType: {"Next review, Type", false},
	OrderStageType:       {"SRS Stage, Type", false},
}

// AllOrders lists every sort order in menu order.
var AllOrders = []SortOrder{OrderType, OrderLevelType, OrderAvailableAtType, OrderStageType}

func (o SortOrder) valid() bool { return o >= 0 && int(o) < len(orderInfo) }

// Description is the label shown in menus and accepted by ForDescription.
func (o SortOrder) Description() string {
	if !o.valid() {
		return "Unknown"
	}
	return orderInfo[o].description
}

// SingleLevel reports whether the order has only one header level.
func (o SortOrder) SingleLevel() bool {
	return o.valid() && orderInfo[o].singleLevel
}

// Policy returns the grouping policy for this order, evaluated against the
// given search time.
func (o SortOrder) Policy(ref time.Time) grouping.Policy[*domain.Subject] {
	return &subjectPolicy{order: o, ref: ref}
}

// ForDescription finds the order with the given description, or returns def.
// Matching ignores case and surrounding space.
func ForDescription(description string, def SortOrder) SortOrder {
	want := strings.TrimSpace(description)
	for _, o := range AllOrders {
		if strings.EqualFold(o.Description(), want) {
			return o
		}
	}
	return def
}

// Descriptions returns the description of every order in menu order.
func Descriptions() []string {
	out := make([]string, 0, len(AllOrders))
	for _, o := range AllOrders {
		out = append(out, o.Description())
	}
	return out
}

// String, Set and Type make *SortOrder usable as a pflag.Value.
func (o SortOrder) String() string { return o.Description() }

func (o *SortOrder) Set(v string) error {
	for _, cand := range AllOrders {
		if strings.EqualFold(cand.Description(), strings.TrimSpace(v)) || strings.EqualFold(cand.flagName(), v) {
			*o = cand
			return nil
		}
	}
	return fmt.Errorf("unknown sort order %q (want one of: type, level, available, stage)", v)
}

func (o *SortOrder) Type() string { return "order" }

func (o SortOrder) flagName() string {
	switch o {
	case OrderLevelType:
		return "level"
	case OrderAvailableAtType:
		return "available"
	case OrderStageType:
		return "stage"
	default:
		return "type"
	}
}
