// Package tier maps demographic profile attributes to competitive cohorts.
package tier

import (
	"fmt"
	"strings"

	"github.com/questx-lab/fittrack/pkg/enum"
	"github.com/questx-lab/fittrack/pkg/errorx"
)

type BiologicalSex string

var (
	Male   = enum.New(BiologicalSex("male"))
	Female = enum.New(BiologicalSex("female"))
)

type AgeBracket string

var (
	Age18To29 = enum.New(AgeBracket("18-29"))
	Age30To39 = enum.New(AgeBracket("30-39"))
	Age40To49 = enum.New(AgeBracket("40-49"))
	Age50To59 = enum.New(AgeBracket("50-59"))
	Age60Plus = enum.New(AgeBracket("60+"))
)

type FitnessLevel string

var (
	Beginner     = enum.New(FitnessLevel("beginner"))
	Intermediate = enum.New(FitnessLevel("intermediate"))
	Advanced     = enum.New(FitnessLevel("advanced"))
)

var (
	sexCodes   = map[BiologicalSex]string{Male: "M", Female: "F"}
	levelCodes = map[FitnessLevel]string{Beginner: "BEG", Intermediate: "INT", Advanced: "ADV"}

	sexNames   = map[BiologicalSex]string{Male: "Male", Female: "Female"}
	levelNames = map[FitnessLevel]string{Beginner: "Beginner", Intermediate: "Intermediate", Advanced: "Advanced"}
)

type Attributes struct {
	Sex   BiologicalSex
	Age   AgeBracket
	Level FitnessLevel
}

// ComputeTierCode builds codes such as "M-18-29-BEG".
func ComputeTierCode(sex BiologicalSex, age AgeBracket, level FitnessLevel) (string, error) {
	sexCode, ok := sexCodes[sex]
	if !ok {
		return "", errorx.New(errorx.InvalidAttribute, "Invalid biological sex %q", sex)
	}

	if _, err := enum.ToEnum[AgeBracket](string(age)); err != nil {
		return "", errorx.New(errorx.InvalidAttribute, "Invalid age bracket %q", age)
	}

	levelCode, ok := levelCodes[level]
	if !ok {
		return "", errorx.New(errorx.InvalidAttribute, "Invalid fitness level %q", level)
	}

	return fmt.Sprintf("%s-%s-%s", sexCode, age, levelCode), nil
}

// ParseTierCode is the inverse of ComputeTierCode.
func ParseTierCode(code string) (Attributes, error) {
	// The age bracket itself contains a dash, so split off the outer parts.
	first := strings.Index(code, "-")
	last := strings.LastIndex(code, "-")
	if first <= 0 || last <= first {
		return Attributes{}, errorx.New(errorx.InvalidAttribute, "Invalid tier code %q", code)
	}

	attrs := Attributes{}
	found := false
	for sex, c := range sexCodes {
		if c == code[:first] {
			attrs.Sex, found = sex, true
		}
	}
	if !found {
		return Attributes{}, errorx.New(errorx.InvalidAttribute, "Invalid tier code %q", code)
	}

	age, err := enum.ToEnum[AgeBracket](code[first+1 : last])
	if err != nil {
		return Attributes{}, errorx.New(errorx.InvalidAttribute, "Invalid tier code %q", code)
	}
	attrs.Age = age

	found = false
	for level, c := range levelCodes {
		if c == code[last+1:] {
			attrs.Level, found = level, true
		}
	}
	if !found {
		return Attributes{}, errorx.New(errorx.InvalidAttribute, "Invalid tier code %q", code)
	}

	return attrs, nil
}

func ValidateTierCode(code string) bool {
	_, err := ParseTierCode(code)
	return err == nil
}

// AllTierCodes returns the 30 valid codes, grouped by sex then age.
func AllTierCodes() []string {
	codes := []string{}
	for _, sex := range enum.Values[BiologicalSex]() {
		for _, age := range enum.Values[AgeBracket]() {
			for _, level := range enum.Values[FitnessLevel]() {
				code, _ := ComputeTierCode(sex, age, level)
				codes = append(codes, code)
			}
		}
	}

	return codes
}

// DisplayName renders a code for people, e.g. "Male · 18-29 · Beginner".
func DisplayName(code string) (string, error) {
	attrs, err := ParseTierCode(code)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s · %s · %s", sexNames[attrs.Sex], attrs.Age, levelNames[attrs.Level]), nil
}
