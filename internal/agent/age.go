package agent

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"github.com/Rosseoko/erandi/internal/model"
)

// gradesByAge maps student ages to US grade levels, approximately.
var gradesByAge = map[int][]string{
	5:  {"K"},
	6:  {"1"},
	7:  {"2"},
	8:  {"3"},
	9:  {"4"},
	10: {"5"},
	11: {"6"},
	12: {"7"},
	13: {"8"},
	14: {"9"},
	15: {"10"},
	16: {"11"},
	17: {"12"},
	18: {"12", "College"},
}

var agePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+)\s*(?:years?|yrs?)\s*old`),
	regexp.MustCompile(`(?i)(\d+)[- ]year[- ]old`),
	regexp.MustCompile(`(?i)(\d+)\s*years?`),
	regexp.MustCompile(`(?i)age\s*(?:of|is|:)?\s*(\d+)`),
}

var ageRangePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)ages?\s*(\d+)\s*[-–—]\s*(\d+)`),
	regexp.MustCompile(`(?i)ages?\s*(\d+)\s*to\s*(\d+)`),
	regexp.MustCompile(`(?i)(\d+)\s*[-–—]\s*(\d+)\s*(?:years?|yrs?)\s*old`),
	regexp.MustCompile(`(?i)(\d+)\s*to\s*(\d+)\s*(?:years?|yrs?)\s*old`),
	regexp.MustCompile(`(?i)between\s*(\d+)\s*and\s*(\d+)\s*(?:years?|yrs?)`),
	regexp.MustCompile(`(?i)for\s*(?:ages?)?\s*(\d+)\s*to\s*(\d+)`),
}

// ExtractAge pulls a single student age out of free text, e.g. "for my
// 13 year olds" yields 13. Returns 0 when nothing matches.
func ExtractAge(text string) int {
	for _, p := range agePatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			age, _ := strconv.Atoi(m[1])
			return age
		}
	}
	return 0
}

// ExtractAgeRange pulls an age span out of free text, e.g. "ages
// 10-12". Returns nil when nothing matches.
func ExtractAgeRange(text string) *model.AgeRange {
	for _, p := range ageRangePatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			lo, _ := strconv.Atoi(m[1])
			hi, _ := strconv.Atoi(m[2])
			return &model.AgeRange{Min: lo, Max: hi}
		}
	}
	return nil
}

// GradesForAges converts ages to the set of grade levels they span,
// sorted with K first.
func GradesForAges(ages []int) []string {
	seen := map[string]bool{}
	var grades []string
	for _, age := range ages {
		for _, g := range gradesByAge[age] {
			if !seen[g] {
				seen[g] = true
				grades = append(grades, g)
			}
		}
	}
	sort.Slice(grades, func(i, j int) bool {
		return gradeOrd(grades[i]) < gradeOrd(grades[j])
	})
	return grades
}

func gradeOrd(g string) int {
	if g == "K" {
		return 0
	}
	if g == "College" {
		return 13
	}
	n, _ := strconv.Atoi(g)
	return n
}

// supplementAges fills in the profile's age range and grade level from
// the raw request text when the model left them unset.
func supplementAges(p *model.ProjectProfile, rawMessage string) {
	var ages []int
	if r := ExtractAgeRange(rawMessage); r != nil {
		p.AgeRange = r
		for a := r.Min; a <= r.Max; a++ {
			ages = append(ages, a)
		}
	} else if a := ExtractAge(rawMessage); a != 0 {
		ages = []int{a}
		if p.AgeRange == nil {
			p.AgeRange = &model.AgeRange{Min: a, Max: a}
		}
	}

	if p.GradeLevel == "" && len(ages) > 0 {
		grades := GradesForAges(ages)
		switch len(grades) {
		case 0:
		case 1:
			p.GradeLevel = grades[0]
		default:
			p.GradeLevel = fmt.Sprintf("%s-%s", grades[0], grades[len(grades)-1])
		}
	}
}
