package identity

import (
	"errors"
	"testing"
)

func TestBirthDateAndSexFromCURP(t *testing.T) {
	curp := "GOMJ850101HDFXYZ09"
	date, ok := BirthDateFromCURP(curp)
	if !ok {
		t.Fatalf("expected birth date from %s", curp)
	}
	if got := date.Format("2006-01-02"); got != "1985-01-01" {
		t.Fatalf("expected 1985-01-01, got %s", got)
	}
	sex, ok := SexFromCURP(curp)
	if !ok || sex != SexMale {
		t.Fatalf("expected male, got %q", sex)
	}
	state, ok := BirthStateFromCURP(curp)
	if !ok || state != "CIUDAD DE MEXICO" {
		t.Fatalf("expected CIUDAD DE MEXICO, got %q", state)
	}
}

func TestBirthDateFromCURPCentury(t *testing.T) {
	cases := []struct {
		curp string
		want string
		ok   bool
	}{
		{"LOPA010304HNEXXX00", "2001-03-04", true},
		{"LOPA300304HNEXXX00", "2030-03-04", true},
		{"LOPA310304HNEXXX00", "1931-03-04", true},
		{"LOPA990304HNEXXX00", "1999-03-04", true},
		{"GOMJ850231HDFXYZ08", "", false},
		{"GOMJ851301HDFXYZ08", "", false},
		{"SHORT", "", false},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.curp, func(t *testing.T) {
			date, ok := BirthDateFromCURP(tc.curp)
			if ok != tc.ok {
				t.Fatalf("expected ok=%v, got %v", tc.ok, ok)
			}
			if ok && date.Format("2006-01-02") != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, date.Format("2006-01-02"))
			}
		})
	}
}

func TestSexFromCURPFemale(t *testing.T) {
	sex, ok := SexFromCURP("PEGJ900215MJCRRN08")
	if !ok || sex != SexFemale {
		t.Fatalf("expected female, got %q", sex)
	}
}

func TestBirthStateBornAbroad(t *testing.T) {
	state, ok := BirthStateFromCURP("LOPA010304HNEXXX00")
	if !ok || state != stateCodes[BornAbroadCode] {
		t.Fatalf("expected born abroad, got %q", state)
	}
	if _, ok := BirthStateFromCURP("LOPA010304HZZXXX00"); ok {
		t.Fatalf("expected unknown state code to be rejected")
	}
}

func TestStateTableSize(t *testing.T) {
	if len(stateCodes) != 33 {
		t.Fatalf("expected 32 states plus born abroad, got %d", len(stateCodes))
	}
}

func TestValidCURP(t *testing.T) {
	cases := map[string]bool{
		"GOMJ850101HDFXYZ08": true,
		"GOMJ850101HDFXYZ09": true,
		"PEGJ900215MJCRRN08": true,
		"GOMJ851301HDFXYZ08": false,
		"GBMJ850101HDFXYZ08": false,
		"GOMJ850101HZZXYZ08": false,
		"GOMJ850101HDFAEI08": false,
		"gomj850101hdfxyz08": true,
	}
	for curp, want := range cases {
		if got := ValidCURP(curp); got != want {
			t.Fatalf("ValidCURP(%s) = %v, want %v", curp, got, want)
		}
	}
}

func TestCURPCheckDigit(t *testing.T) {
	cases := map[string]int{
		"GOMJ850101HDFXYZ0": 8,
		"PEGJ900215MJCRRN0": 8,
		"LOPA010304HNEXXX0": 0,
	}
	for prefix, want := range cases {
		got, err := CURPCheckDigit(prefix)
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", prefix, err)
		}
		if got != want {
			t.Fatalf("check digit for %s = %d, want %d", prefix, got, want)
		}
	}
	if _, err := CURPCheckDigit("ABC"); !errors.Is(err, ErrInvalidCURP) {
		t.Fatalf("expected ErrInvalidCURP, got %v", err)
	}
	if _, err := CURPCheckDigit("GOMJ850101HDF*YZ0"); !errors.Is(err, ErrInvalidCURP) {
		t.Fatalf("expected ErrInvalidCURP for bad character, got %v", err)
	}
}

func TestFindCURPPrefersStructurallyValid(t *testing.T) {
	text := "GOMJ851301HDFXYZ08 PEGJ900215MJCRRN08"
	curp, valid, candidates := findCURP(text)
	if curp != "PEGJ900215MJCRRN08" || !valid {
		t.Fatalf("expected valid second candidate, got %s valid=%v", curp, valid)
	}
	if candidates != 2 {
		t.Fatalf("expected 2 candidates, got %d", candidates)
	}

	curp, valid, _ = findCURP("GOMJ851301HDFXYZ08")
	if curp != "GOMJ851301HDFXYZ08" || valid {
		t.Fatalf("expected invalid candidate to be kept, got %s valid=%v", curp, valid)
	}
}
