// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package ux

import "testing"

func TestParsePersonalityLevel(t *testing.T) {
	tests := []struct {
		input string
		want  PersonalityLevel
	}{
		{"full", PersonalityFull},
		{"f", PersonalityFull},
		{"standard", PersonalityStandard},
		{"std", PersonalityStandard},
		{"minimal", PersonalityMinimal},
		{"min", PersonalityMinimal},
		{"machine", PersonalityMachine},
		{"quiet", PersonalityMachine},
		{"MACHINE", PersonalityMachine},
		{"bogus", PersonalityStandard},
		{"", PersonalityStandard},
	}

	for _, tt := range tests {
		got := ParsePersonalityLevel(tt.input)
		if got != tt.want {
			t.Errorf("ParsePersonalityLevel(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSetPersonalityLevel(t *testing.T) {
	original := GetPersonality()
	defer SetPersonality(original)

	SetPersonalityLevel(PersonalityMachine)
	if GetPersonality().Level != PersonalityMachine {
		t.Errorf("Level = %q, want %q", GetPersonality().Level, PersonalityMachine)
	}

	SetPersonalityLevel(PersonalityFull)
	if GetPersonality().Level != PersonalityFull {
		t.Errorf("Level = %q, want %q", GetPersonality().Level, PersonalityFull)
	}
}

func TestIconRender(t *testing.T) {
	for _, icon := range []Icon{IconSuccess, IconWarning, IconError, IconSkipped, IconArrow} {
		if icon.Render() == "" {
			t.Errorf("Icon %q rendered empty", string(icon))
		}
	}
}
