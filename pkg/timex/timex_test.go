package timex

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTime_UnixMethods(t *testing.T) {
	// Create a fixed time
	// 创建一个固定时间
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	tt := Time(now)

	if tt.Unix() != now.Unix() {
		t.Errorf("Unix() = %v, want %v", tt.Unix(), now.Unix())
	}
	if tt.UnixMilli() != now.UnixMilli() {
		t.Errorf("UnixMilli() = %v, want %v", tt.UnixMilli(), now.UnixMilli())
	}
	if tt.UnixMicro() != now.UnixMicro() {
		t.Errorf("UnixMicro() = %v, want %v", tt.UnixMicro(), now.UnixMicro())
	}
	if tt.UnixNano() != now.UnixNano() {
		t.Errorf("UnixNano() = %v, want %v", tt.UnixNano(), now.UnixNano())
	}
}

func TestTime_MarshalJSON(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	data, err := json.Marshal(Time(now))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `"2024-01-01T12:00:00Z"` {
		t.Errorf("Marshal() = %s, want %s", data, `"2024-01-01T12:00:00Z"`)
	}

	// Zero time marshals to an empty string
	// 零值序列化为空字符串
	data, err = json.Marshal(Time(time.Time{}))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `""` {
		t.Errorf("Marshal() zero = %s, want \"\"", data)
	}
}

func TestTime_UnmarshalJSON(t *testing.T) {
	var tt Time
	if err := json.Unmarshal([]byte(`"2024-01-01T12:00:00Z"`), &tt); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	want := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	if !tt.Time().Equal(want) {
		t.Errorf("Unmarshal() = %v, want %v", tt.Time(), want)
	}

	if err := json.Unmarshal([]byte(`""`), &tt); err != nil {
		t.Fatalf("Unmarshal() empty error = %v", err)
	}
	if !tt.IsZero() {
		t.Errorf("Unmarshal() empty should produce zero time, got %v", tt.Time())
	}
}
