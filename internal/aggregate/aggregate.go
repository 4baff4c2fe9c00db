// Package aggregate derives dashboard figures from snapshots of traffic
// events and bill records. Every function is pure: inputs are never
// modified and empty inputs yield empty results.
package aggregate

import (
	"math"
	"sort"
	"strings"

	"github.com/spf13/cast"

	"footfall-service/internal/model"
	"footfall-service/internal/timeslot"
)

const (
	// AllBranches merges every branch. It is labelled as an average in the
	// UI but performs no averaging.
	AllBranches = "all-branches"
	// All disables the date or period filter.
	All = "all"

	UnspecifiedOccupation = "unspecified occupation"
)

type Scope struct {
	Branches []string `json:"branches"`
	Date     string   `json:"date"`
	Period   string   `json:"period"`
}

func (s Scope) allBranches() bool {
	if len(s.Branches) == 0 {
		return true
	}
	for _, b := range s.Branches {
		if b == AllBranches {
			return true
		}
	}
	return false
}

func (s Scope) match(branch, date, period string) bool {
	if !s.allBranches() {
		found := false
		for _, b := range s.Branches {
			if b == branch {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if s.Date != "" && s.Date != All && s.Date != date {
		return false
	}
	if s.Period != "" && s.Period != All && s.Period != period {
		return false
	}
	return true
}

func filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

func FilterTraffic(events []model.TrafficEvent, scope Scope) []model.TrafficEvent {
	return filter(events, func(e model.TrafficEvent) bool {
		return scope.match(e.BranchID, e.Date, e.Period)
	})
}

func FilterBills(bills []model.BillRecord, scope Scope) []model.BillRecord {
	return filter(bills, func(b model.BillRecord) bool {
		return scope.match(b.BranchID, b.Date, b.Period)
	})
}

type DailySummary struct {
	Date        string `json:"date"`
	Car         int    `json:"car"`
	Moto        int    `json:"moto"`
	Walk        int    `json:"walk"`
	Male        int    `json:"male"`
	Female      int    `json:"female"`
	Food        int    `json:"food"`
	NonFood     int    `json:"nonfood"`
	DrinkPerson int    `json:"drink_person"`
	DrinkCup    int    `json:"drink_cup"`
	TotalBills  int    `json:"total_bills"`
}

// GroupByDate rolls events and bills up per date, ascending. A date seen
// on either side gets a row.
func GroupByDate(events []model.TrafficEvent, bills []model.BillRecord) []DailySummary {
	byDate := make(map[string]*DailySummary)
	row := func(date string) *DailySummary {
		s, ok := byDate[date]
		if !ok {
			s = &DailySummary{Date: date}
			byDate[date] = s
		}
		return s
	}

	for _, e := range events {
		s := row(e.Date)
		switch e.Type {
		case model.TypeCar:
			s.Car++
		case model.TypeMoto:
			s.Moto++
		case model.TypeWalk:
			s.Walk++
		case model.TypeMale:
			s.Male++
		case model.TypeFemale:
			s.Female++
		case model.TypeFood:
			s.Food++
		case model.TypeNonFood:
			s.NonFood++
		case model.TypeDrink:
			s.DrinkPerson++
			s.DrinkCup += int(number(e.Field("cups")))
		}
	}
	for _, b := range bills {
		row(b.Date).TotalBills += int(number(b.Field("billCount")))
	}

	out := make([]DailySummary, 0, len(byDate))
	for _, s := range byDate {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// Dates lists the distinct dates of both inputs, newest first.
func Dates(events []model.TrafficEvent, bills []model.BillRecord) []string {
	seen := make(map[string]struct{})
	for _, e := range events {
		if e.Date != "" {
			seen[e.Date] = struct{}{}
		}
	}
	for _, b := range bills {
		if b.Date != "" {
			seen[b.Date] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for d := range seen {
		out = append(out, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(out)))
	return out
}

type Share struct {
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

type Dimension string

const (
	DimensionProduct Dimension = "product"
	DimensionCareer  Dimension = "career"
	DimensionAge     Dimension = "age"
)

// Proportions dispatches to the breakdown for dim. Unknown dimensions
// produce an empty list.
func Proportions(events []model.TrafficEvent, dim Dimension) []Share {
	switch dim {
	case DimensionProduct:
		return ProductMix(events)
	case DimensionCareer:
		return CareerMix(events)
	case DimensionAge:
		brackets := AgeBrackets(events, DefaultAgeBrackets)
		out := make([]Share, len(brackets))
		for i, b := range brackets {
			out[i] = b.Share
		}
		return out
	}
	return []Share{}
}

// ProductMix splits purchases into nonfood, food and drink cups.
func ProductMix(events []model.TrafficEvent) []Share {
	var nonFood, food, cups int
	for _, e := range events {
		switch e.Type {
		case model.TypeNonFood:
			nonFood++
		case model.TypeFood:
			food++
		case model.TypeDrink:
			cups += int(number(e.Field("cups")))
		}
	}
	total := nonFood + food + cups
	if total == 0 {
		return []Share{}
	}
	return []Share{
		{Label: model.TypeNonFood, Count: nonFood, Percent: percent(nonFood, total, 1)},
		{Label: model.TypeFood, Count: food, Percent: percent(food, total, 1)},
		{Label: model.TypeDrink, Count: cups, Percent: percent(cups, total, 1)},
	}
}

func isCustomer(e model.TrafficEvent) bool {
	return strings.TrimSpace(string(e.Group)) == string(model.GroupCustomer)
}

// CareerMix counts customer events per occupation in first-seen order.
func CareerMix(events []model.TrafficEvent) []Share {
	counts := make(map[string]int)
	var order []string
	total := 0
	for _, e := range events {
		if !isCustomer(e) {
			continue
		}
		label := strings.TrimSpace(e.Career)
		if label == "" {
			label = UnspecifiedOccupation
		}
		if _, ok := counts[label]; !ok {
			order = append(order, label)
		}
		counts[label]++
		total++
	}
	if total == 0 {
		return []Share{}
	}

	out := make([]Share, 0, len(order))
	for _, label := range order {
		out = append(out, Share{Label: label, Count: counts[label], Percent: percent(counts[label], total, 1)})
	}
	return out
}

type AgeBracket struct {
	Label string  `json:"label"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

var DefaultAgeBrackets = []AgeBracket{
	{Label: "under 20", Min: 0, Max: 20},
	{Label: "30-40", Min: 30, Max: 40},
	{Label: "40-50", Min: 40, Max: 50},
	{Label: "50-60", Min: 50, Max: 60},
}

type BracketShare struct {
	Share
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// AgeBrackets reports each bracket as a share of all customer events.
// Ages outside every bracket, or not numeric, only count toward the
// denominator.
func AgeBrackets(events []model.TrafficEvent, brackets []AgeBracket) []BracketShare {
	customers := 0
	counts := make([]int, len(brackets))
	for _, e := range events {
		if !isCustomer(e) {
			continue
		}
		customers++
		age, ok := parseAge(e.Age)
		if !ok {
			continue
		}
		for i, b := range brackets {
			if age >= b.Min && age < b.Max {
				counts[i]++
			}
		}
	}
	if customers == 0 {
		return []BracketShare{}
	}

	out := make([]BracketShare, len(brackets))
	for i, b := range brackets {
		out[i] = BracketShare{
			Share: Share{Label: b.Label, Count: counts[i], Percent: percent(counts[i], customers, 0)},
			Min:   b.Min,
			Max:   b.Max,
		}
	}
	return out
}

type Count struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// VehicleMix returns raw counts of arrivals by car, motorbike and on foot.
func VehicleMix(events []model.TrafficEvent) []Count {
	counts := []Count{{Label: model.TypeCar}, {Label: model.TypeMoto}, {Label: model.TypeWalk}}
	total := 0
	for _, e := range events {
		for i := range counts {
			if e.Type == counts[i].Label {
				counts[i].Count++
				total++
			}
		}
	}
	if total == 0 {
		return []Count{}
	}
	return counts
}

type Fielder interface {
	Field(name string) any
}

// Total sums a named field; missing and non-numeric values count as zero.
func Total[T Fielder](records []T, field string) float64 {
	var sum float64
	for _, r := range records {
		sum += number(r.Field(field))
	}
	return sum
}

type Tally struct {
	Male    int `json:"male"`
	Female  int `json:"female"`
	Car     int `json:"car"`
	Moto    int `json:"moto"`
	Walk    int `json:"walk"`
	Food    int `json:"food"`
	NonFood int `json:"nonfood"`
	Drink   int `json:"drink"`
	Cups    int `json:"cups"`
}

// LiveTally counts one branch's events inside a single bucket. Types only
// count within their own group.
func LiveTally(events []model.TrafficEvent, branch string, b timeslot.Bucket) Tally {
	var t Tally
	for _, e := range events {
		if e.BranchID != branch || e.Date != b.Date || e.Period != b.Period || e.Slot != b.Slot {
			continue
		}
		switch {
		case e.Group == model.GroupCustomer && e.Type == model.TypeMale:
			t.Male++
		case e.Group == model.GroupCustomer && e.Type == model.TypeFemale:
			t.Female++
		case e.Group == model.GroupVehicle && e.Type == model.TypeCar:
			t.Car++
		case e.Group == model.GroupVehicle && e.Type == model.TypeMoto:
			t.Moto++
		case e.Group == model.GroupVehicle && e.Type == model.TypeWalk:
			t.Walk++
		case e.Group == model.GroupProduct && e.Type == model.TypeFood:
			t.Food++
		case e.Group == model.GroupProduct && e.Type == model.TypeNonFood:
			t.NonFood++
		case e.Group == model.GroupProduct && e.Type == model.TypeDrink:
			t.Drink++
		}
		if e.Type == model.TypeDrink {
			t.Cups += int(number(e.Field("cups")))
		}
	}
	return t
}

func number(v any) float64 {
	if v == nil {
		return 0
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func parseAge(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	f, err := cast.ToFloat64E(raw)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func percent(part, total, decimals int) float64 {
	if total == 0 {
		total = 1
	}
	p := float64(part) / float64(total) * 100
	scale := math.Pow(10, float64(decimals))
	return math.Round(p*scale) / scale
}
