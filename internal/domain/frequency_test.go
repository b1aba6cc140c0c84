package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFrequency_CanonicalTags(t *testing.T) {
	cases := map[string]FrequencyRule{
		"every_day":            {Kind: FrequencyEveryDay},
		"once_weekly":          {Kind: FrequencyOnceWeekly},
		"once_monthly":         {Kind: FrequencyOnceMonthly},
		"start_of_every_month": {Kind: FrequencyStartOfEveryMonth},
		"end_of_every_month":   {Kind: FrequencyEndOfEveryMonth},
		"once_off":             {Kind: FrequencyOnceOff},
		"monday":               {Kind: FrequencySpecificWeekday, Weekday: time.Monday},
		"saturday":             {Kind: FrequencySpecificWeekday, Weekday: time.Saturday},
		"start_of_january":     {Kind: FrequencyStartOfMonth, Month: time.January},
		"end_of_december":      {Kind: FrequencyEndOfMonth, Month: time.December},
	}

	for tag, want := range cases {
		rule, err := ParseFrequency(tag)
		require.NoError(t, err, tag)
		assert.Equal(t, want, rule, tag)
	}
}

func TestParseFrequency_LegacyAliases(t *testing.T) {
	cases := map[string]FrequencyKind{
		"daily":       FrequencyEveryDay,
		"weekly":      FrequencyOnceWeekly,
		"monthly":     FrequencyOnceMonthly,
		"every_month": FrequencyStartOfEveryMonth,
		"month_end":   FrequencyEndOfEveryMonth,
		"one_off":     FrequencyOnceOff,
	}

	for alias, want := range cases {
		rule, err := ParseFrequency(alias)
		require.NoError(t, err, alias)
		assert.Equal(t, want, rule.Kind, alias)
	}
}

func TestParseFrequency_NormalizesSpelling(t *testing.T) {
	rule, err := ParseFrequency("  Start Of Every Month ")
	require.NoError(t, err)
	assert.Equal(t, FrequencyStartOfEveryMonth, rule.Kind)

	rule, err = ParseFrequency("end-of-march")
	require.NoError(t, err)
	assert.Equal(t, FrequencyEndOfMonth, rule.Kind)
	assert.Equal(t, time.March, rule.Month)
}

func TestParseFrequency_Unknown(t *testing.T) {
	_, err := ParseFrequency("fortnightly")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownFrequency))
}

func TestParseFrequencies_DropsUnknownTags(t *testing.T) {
	rules, dropped := ParseFrequencies([]string{"every_day", "fortnightly", "monday", ""})

	require.Len(t, rules, 2)
	assert.Equal(t, FrequencyEveryDay, rules[0].Kind)
	assert.Equal(t, FrequencySpecificWeekday, rules[1].Kind)
	assert.Equal(t, []string{"fortnightly", ""}, dropped)
}

func TestFrequencyRule_TagRoundTrip(t *testing.T) {
	tags := []string{
		"every_day", "once_weekly", "once_monthly", "once_off",
		"start_of_every_month", "end_of_every_month",
		"tuesday", "start_of_june", "end_of_february",
	}

	for _, tag := range tags {
		rule, err := ParseFrequency(tag)
		require.NoError(t, err, tag)
		assert.Equal(t, tag, rule.Tag(), tag)
	}
}
