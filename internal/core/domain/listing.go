package domain

// Ключи полей записи в таблице-источнике
const (
	FieldCode      = "MÃ CĂN"
	FieldProject   = "Dự án"
	FieldZone      = "KHU"
	FieldRow       = "Dãy căn"
	FieldType      = "LOẠI"
	FieldArea      = "DT"
	FieldFundType  = "Loại Quỹ"
	FieldPriceTTS  = "TTS"
	FieldPriceFull = "FULL"
	FieldNote      = "GHI CHÚ"
	FieldTagTTS    = "Tag TTS"
	FieldTagFull   = "Tag Full"
)

// Listing - одна единица недвижимости из таблицы.
// Значения хранятся в исходном текстовом виде, числа JSON - своими цифрами.
type Listing struct {
	Code      string `json:"code"`
	Project   string `json:"project"`
	Zone      string `json:"zone"`
	Row       string `json:"row"`
	Type      string `json:"type"`
	Area      string `json:"area"`
	FundType  string `json:"fund_type"`
	PriceTTS  string `json:"price_tts"`
	PriceFull string `json:"price_full"`
	Note      string `json:"note"`
	TagTTS    string `json:"tag_tts"`
	TagFull   string `json:"tag_full"`
}

// ListingFromFields собирает запись из уже приведенных к строке полей
func ListingFromFields(fields map[string]string) Listing {
	return Listing{
		Code:      fields[FieldCode],
		Project:   fields[FieldProject],
		Zone:      fields[FieldZone],
		Row:       fields[FieldRow],
		Type:      fields[FieldType],
		Area:      fields[FieldArea],
		FundType:  fields[FieldFundType],
		PriceTTS:  fields[FieldPriceTTS],
		PriceFull: fields[FieldPriceFull],
		Note:      fields[FieldNote],
		TagTTS:    fields[FieldTagTTS],
		TagFull:   fields[FieldTagFull],
	}
}

// FilterCategory - имя набора значений для выпадающего фильтра
type FilterCategory string

const (
	CategoryProject  FilterCategory = "DU_AN"
	CategoryZone     FilterCategory = "KHU"
	CategoryRow      FilterCategory = "DAY_CAN"
	CategoryTagTTS   FilterCategory = "TTS_TAGS"
	CategoryTagFull  FilterCategory = "FULL_TAGS"
	CategoryFundType FilterCategory = "LOAI_QUY"
)

// FilterCategories перечисляет категории в порядке вывода на странице
var FilterCategories = []FilterCategory{
	CategoryProject, CategoryZone, CategoryRow, CategoryTagTTS, CategoryTagFull, CategoryFundType,
}

// FilterOptions - допустимые значения фильтров, пришедшие от сервера
type FilterOptions map[FilterCategory][]string
