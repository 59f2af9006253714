package record_test

import (
	"errors"
	"testing"

	"github.com/openrtl/rxstats/internal/record"
)

func TestParse_FullRecord(t *testing.T) {
	line := []byte(`{"time":"2023-04-12 10:15:30","model":"Acurite-Tower","channel":"A","id":1234,` +
		`"snr":19.2,"freq":433.94,"battery_ok":1,"status":68,"temperature_C":21.5}`)

	p, err := record.Parse(line)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Model != "Acurite-Tower" {
		t.Errorf("Model = %q", p.Model)
	}
	if p.Channel != "A" {
		t.Errorf("Channel = %q", p.Channel)
	}
	if p.ID != "1234" {
		t.Errorf("ID = %q, want numeric id stringified", p.ID)
	}
	if p.SNR != 19.2 {
		t.Errorf("SNR = %v", p.SNR)
	}
	if p.Freq != 433.94 {
		t.Errorf("Freq = %v", p.Freq)
	}
	if p.Battery != "1" {
		t.Errorf("Battery = %q, want raw token \"1\"", p.Battery)
	}
	if p.Status != "68" {
		t.Errorf("Status = %q", p.Status)
	}
	if p.TimeDisplay != "2023-04-12 10:15:30" {
		t.Errorf("TimeDisplay = %q", p.TimeDisplay)
	}
}

func TestParse_NumericModel(t *testing.T) {
	p, err := record.Parse([]byte(`{"time":"1681294530.5","model":118,"id":7}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Model != "118" {
		t.Errorf("Model = %q, want \"118\"", p.Model)
	}
	if p.Time != 1681294530.5 {
		t.Errorf("Time = %v", p.Time)
	}
}

func TestParse_NoModel(t *testing.T) {
	_, err := record.Parse([]byte(`{"time":"2023-04-12 10:15:30","snr":10}`))
	if !errors.Is(err, record.ErrNoModel) {
		t.Fatalf("err = %v, want ErrNoModel", err)
	}
}

func TestParse_MissingTime(t *testing.T) {
	_, err := record.Parse([]byte(`{"model":"X"}`))
	if err == nil {
		t.Fatalf("Parse accepted record without time")
	}
}

func TestParse_MalformedJSON(t *testing.T) {
	_, err := record.Parse([]byte(`{"model":"X","time":`))
	if err == nil {
		t.Fatalf("Parse accepted truncated JSON")
	}
}

func TestParse_BadTimestamp(t *testing.T) {
	_, err := record.Parse([]byte(`{"model":"X","time":"yesterday-ish"}`))
	var te *record.BadTimeError
	if !errors.As(err, &te) {
		t.Fatalf("err = %v, want BadTimeError", err)
	}
	if te.Token != "yesterday-ish" {
		t.Errorf("Token = %q", te.Token)
	}
}

func TestParse_Defaults(t *testing.T) {
	p, err := record.Parse([]byte(`{"model":"X","time":"2023-04-12 10:15:30"}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.SNR != 0 || p.Freq != 0 {
		t.Errorf("SNR/Freq = %v/%v, want 0/0 when absent", p.SNR, p.Freq)
	}
	if p.Battery != "" || p.Status != "" {
		t.Errorf("Battery/Status = %q/%q, want empty when absent", p.Battery, p.Status)
	}
}

func TestParse_TPMSType(t *testing.T) {
	p, err := record.Parse([]byte(`{"model":"Schrader","type":"TPMS","time":"1681294530"}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !p.IsTPMS() {
		t.Errorf("IsTPMS = false for type TPMS")
	}

	p, err = record.Parse([]byte(`{"model":"Acurite-Tower","time":"1681294530"}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.IsTPMS() {
		t.Errorf("IsTPMS = true without type field")
	}
}

func TestParse_NumberTime(t *testing.T) {
	p, err := record.Parse([]byte(`{"model":"X","time":1681294530.25}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Time != 1681294530.25 {
		t.Errorf("Time = %v", p.Time)
	}
}

func TestParse_BooleanBatteryToken(t *testing.T) {
	p1, err := record.Parse([]byte(`{"model":"X","time":"1681294530","battery_ok":true}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	p2, err := record.Parse([]byte(`{"model":"X","time":"1681294531","battery_ok":false}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p1.Battery == p2.Battery {
		t.Errorf("true/false battery tokens compare equal: %q", p1.Battery)
	}
}
