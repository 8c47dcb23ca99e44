package timex

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// Time 是 time.Time 的别名类型
// 序列化为 RFC3339 字符串，零值序列化为空字符串
type Time time.Time

// Now 返回当前时间
func Now() Time {
	return Time(time.Now())
}

// MarshalJSON implements json.Marshaler.
func (t Time) MarshalJSON() ([]byte, error) {
	tt := time.Time(t)
	if tt.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + tt.Format(time.RFC3339) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Time) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == `""` || s == "null" {
		*t = Time(time.Time{})
		return nil
	}
	tt, err := time.Parse(`"`+time.RFC3339+`"`, s)
	if err != nil {
		return err
	}
	*t = Time(tt)
	return nil
}

// Value implements driver.Valuer.
func (t Time) Value() (driver.Value, error) {
	tt := time.Time(t)
	if tt.IsZero() {
		return nil, nil
	}
	return tt, nil
}

// Scan implements sql.Scanner.
func (t *Time) Scan(v interface{}) error {
	if v == nil {
		*t = Time(time.Time{})
		return nil
	}
	switch value := v.(type) {
	case time.Time:
		*t = Time(value)
		return nil
	case []byte:
		tt, err := time.Parse("2006-01-02 15:04:05", string(value))
		if err != nil {
			return err
		}
		*t = Time(tt)
		return nil
	default:
		return fmt.Errorf("cannot convert %v to timex.Time", v)
	}
}

// Time 返回底层的 time.Time
func (t Time) Time() time.Time {
	return time.Time(t)
}

// IsZero 判断是否为零值
func (t Time) IsZero() bool {
	return time.Time(t).IsZero()
}

// Unix 返回 Unix 时间戳（秒）
func (t Time) Unix() int64 {
	return time.Time(t).Unix()
}

// UnixMilli 返回 Unix 时间戳（毫秒）
func (t Time) UnixMilli() int64 {
	return time.Time(t).UnixMilli()
}

// UnixMicro 返回 Unix 时间戳（微秒）
func (t Time) UnixMicro() int64 {
	return time.Time(t).UnixMicro()
}

// UnixNano 返回 Unix 时间戳（纳秒）
func (t Time) UnixNano() int64 {
	return time.Time(t).UnixNano()
}

func (t Time) String() string {
	return time.Time(t).Format(time.RFC3339)
}
