package mongostore

import (
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// legacyLayouts are the string forms older writers stored createdAt and
// updatedAt in before they became BSON dates.
var legacyLayouts = []string{time.RFC3339Nano, "2006-01-02"}

// docTime is written as a BSON date and read from either a date or a
// legacy string. Strings in no known layout decode as the zero time so a
// single bad document does not fail a listing.
type docTime time.Time

func (t docTime) MarshalBSONValue() (byte, []byte, error) {
	typ, data, err := bson.MarshalValue(time.Time(t))
	return byte(typ), data, err
}

func (t *docTime) UnmarshalBSONValue(typ byte, data []byte) error {
	rv := bson.RawValue{Type: bson.Type(typ), Value: data}
	switch rv.Type {
	case bson.TypeDateTime:
		*t = docTime(rv.Time().UTC())
	case bson.TypeString:
		*t = docTime(parseLegacyTime(rv.StringValue()))
	case bson.TypeNull, bson.TypeUndefined:
		*t = docTime{}
	default:
		return errors.Errorf("timestamp: unexpected bson type %v", rv.Type)
	}
	return nil
}

func parseLegacyTime(s string) time.Time {
	for _, layout := range legacyLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC()
		}
	}
	return time.Time{}
}
