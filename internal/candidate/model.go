package candidate

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

type Status string

const (
	StatusNew          Status = "new"
	StatusInterviewing Status = "interviewing"
	StatusHired        Status = "hired"
)

// Label is the text shown on the candidate card badge.
func (s Status) Label() string {
	switch s {
	case StatusNew:
		return "Novo"
	case StatusInterviewing:
		return "Em entrevista"
	case StatusHired:
		return "Contratado"
	default:
		return "Indefinido"
	}
}

type Candidate struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Age           int    `json:"age"`
	Gender        Gender `json:"gender"`
	Location      string `json:"location"`
	HasChildren   bool   `json:"hasChildren"`
	ChildrenCount int    `json:"childrenCount"`
	HasExperience bool   `json:"hasExperience"`
	InterestArea  string `json:"interestArea"`
	Status        Status `json:"status"`
	VideoURL      string `json:"videoUrl,omitempty"`
	ResumeURL     string `json:"resumeUrl,omitempty"`
}

// Option is a value/label pair offered by the filter panel.
type Option struct {
	Value string
	Label string
}

var GenderOptions = []Option{
	{string(GenderMale), "Masculino"},
	{string(GenderFemale), "Feminino"},
	{"non-binary", "Não-binário"},
	{"unspecified", "Prefere não informar"},
}

var ChildrenCountOptions = []Option{
	{"1", "1 filho"},
	{"2", "2 filhos"},
	{"3", "3 filhos"},
	{ChildrenCountFourOrMore, "4 ou mais filhos"},
}

var InterestAreaOptions = []Option{
	{"tecnologia", "Tecnologia"},
	{"marketing", "Marketing"},
	{"vendas", "Vendas"},
	{"financeiro", "Financeiro"},
	{"recursos-humanos", "Recursos Humanos"},
	{"operacoes", "Operações"},
	{"design", "Design"},
	{"juridico", "Jurídico"},
	{"saude", "Saúde"},
	{"educacao", "Educação"},
}

var validChildrenCounts = map[string]struct{}{
	"1":                     {},
	"2":                     {},
	"3":                     {},
	ChildrenCountFourOrMore: {},
}
