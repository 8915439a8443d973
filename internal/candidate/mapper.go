package candidate

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gosimple/slug"
)

// Upstream webhook field names.
const (
	FieldRowNumber     = "row_number"
	FieldName          = "nome"
	FieldAge           = "idade"
	FieldGender        = "genero"
	FieldHasChildren   = "tem_filhos"
	FieldAddress       = "endereco"
	FieldHasExperience = "tem_experiencia"
	FieldInterestArea  = "area_interesse"
	FieldResume        = "curriculo"
	FieldVideo         = "video"
)

const (
	upstreamMale = "masculino"
	upstreamYes  = "sim"
)

// RawRecord is one candidate row as decoded from the webhook JSON.
type RawRecord = map[string]interface{}

type MappingError struct {
	Index int
	Field string
	Err   error
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("record %d: field %q: %v", e.Index, e.Field, e.Err)
}

func (e *MappingError) Unwrap() error {
	return e.Err
}

var (
	errMissing      = fmt.Errorf("missing")
	errNotCoercible = fmt.Errorf("not coercible")
	errEmpty        = fmt.Errorf("empty")
)

// MapRecord converts one upstream record. index is the record position in
// the feed and is only used for error reporting and as a fallback ID.
func MapRecord(index int, raw RawRecord) (Candidate, error) {
	name, ok := stringField(raw, FieldName)
	if !ok {
		return Candidate{}, &MappingError{index, FieldName, errMissing}
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Candidate{}, &MappingError{index, FieldName, errEmpty}
	}
	rawAge, ok := raw[FieldAge]
	if !ok || rawAge == nil {
		return Candidate{}, &MappingError{index, FieldAge, errMissing}
	}
	age, err := toInt(rawAge)
	if err != nil {
		return Candidate{}, &MappingError{index, FieldAge, err}
	}

	id := rowID(raw[FieldRowNumber])
	if id == "" {
		id = strconv.Itoa(index + 1)
	}
	gender, _ := stringField(raw, FieldGender)
	location, _ := stringField(raw, FieldAddress)
	hasChildren, _ := stringField(raw, FieldHasChildren)
	hasExperience, _ := stringField(raw, FieldHasExperience)
	interestArea, _ := stringField(raw, FieldInterestArea)
	resume, _ := stringField(raw, FieldResume)
	video, _ := stringField(raw, FieldVideo)

	return Candidate{
		ID:            id,
		Name:          name,
		Age:           age,
		Gender:        normalizeGender(gender),
		Location:      location,
		HasChildren:   isAffirmative(hasChildren),
		ChildrenCount: 0,
		HasExperience: isAffirmative(hasExperience),
		InterestArea:  slug.Make(interestArea),
		Status:        StatusNew,
		VideoURL:      strings.TrimSpace(video),
		ResumeURL:     strings.TrimSpace(resume),
	}, nil
}

// MapRecords maps every record, skipping the ones that fail. The returned
// errors are all *MappingError, in feed order.
func MapRecords(raws []RawRecord) ([]Candidate, []error) {
	candidates := make([]Candidate, 0, len(raws))
	var errs []error
	for i, raw := range raws {
		c, err := MapRecord(i, raw)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		candidates = append(candidates, c)
	}
	return candidates, errs
}

func normalizeGender(raw string) Gender {
	if strings.EqualFold(strings.TrimSpace(raw), upstreamMale) {
		return GenderMale
	}
	return GenderFemale
}

func isAffirmative(raw string) bool {
	return strings.EqualFold(strings.TrimSpace(raw), upstreamYes)
}

func stringField(raw RawRecord, key string) (string, bool) {
	v, ok := raw[key]
	if !ok || v == nil {
		return "", false
	}
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return fmt.Sprintf("%v", t), true
	}
}

func toInt(v interface{}) (int, error) {
	switch t := v.(type) {
	case float64:
		if t != math.Trunc(t) || t > math.MaxInt32 || t < math.MinInt32 {
			return 0, errNotCoercible
		}
		return int(t), nil
	case int:
		return t, nil
	case json.Number:
		n, err := t.Int64()
		if err != nil || n > math.MaxInt32 || n < math.MinInt32 {
			return 0, errNotCoercible
		}
		return int(n), nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 32)
		if err != nil {
			return 0, errNotCoercible
		}
		return int(n), nil
	default:
		return 0, errNotCoercible
	}
}

func rowID(v interface{}) string {
	if v == nil {
		return ""
	}
	if n, err := toInt(v); err == nil {
		return strconv.Itoa(n)
	}
	s, _ := v.(string)
	return strings.TrimSpace(s)
}
