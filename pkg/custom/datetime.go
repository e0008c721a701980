package custom

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Datetime is a time.Time that round-trips through JSON as RFC3339 and
// through BSON as a native datetime, so Mongo can sort on it.
type Datetime time.Time

// Now returns the current UTC time as a Datetime.
func Now() Datetime {
	return Datetime(time.Now().UTC())
}

// Time returns the underlying time.Time.
func (d Datetime) Time() time.Time {
	return time.Time(d)
}

// MarshalJSON implements the json.Marshaler interface.
func (d Datetime) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", time.Time(d).UTC().Format(time.RFC3339))), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (d *Datetime) UnmarshalJSON(text []byte) error {
	t, err := time.Parse(`"`+time.RFC3339+`"`, string(text))
	if err != nil {
		return fmt.Errorf("invalid datetime: %w", err)
	}
	*d = Datetime(t)
	return nil
}

// MarshalBSONValue implements the bson.ValueMarshaler interface.
func (d Datetime) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if time.Time(d).IsZero() {
		return bson.TypeNull, nil, nil
	}
	return bson.MarshalValue(primitive.NewDateTimeFromTime(time.Time(d).UTC()))
}

// UnmarshalBSONValue implements the bson.ValueUnmarshaler interface.
func (d *Datetime) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	if t == bson.TypeNull {
		*d = Datetime{}
		return nil
	}

	var dt primitive.DateTime
	if err := bson.UnmarshalValue(t, data, &dt); err != nil {
		return fmt.Errorf("invalid datetime: %w", err)
	}
	*d = Datetime(dt.Time().UTC())
	return nil
}

// String implements the fmt.Stringer interface.
func (d Datetime) String() string {
	return time.Time(d).Format(time.RFC3339)
}
