package truncgil

import "encoding/json"

// Item is one quoted instrument from the metals feed. The feed has shipped
// both English (Selling/Buying) and Turkish (Satis/Alis) field names over
// time, and values arrive either as numbers or comma-decimal strings, so the
// fields stay untyped and both spellings are decoded.
type Item struct {
	Selling interface{} `json:"Selling"`
	Buying  interface{} `json:"Buying"`
	Satis   interface{} `json:"Satis"`
	Alis    interface{} `json:"Alis"`
}

// SellingValue returns whichever selling field the feed populated.
func (i Item) SellingValue() interface{} {
	if i.Selling != nil {
		return i.Selling
	}
	return i.Satis
}

// BuyingValue returns whichever buying field the feed populated.
func (i Item) BuyingValue() interface{} {
	if i.Buying != nil {
		return i.Buying
	}
	return i.Alis
}

// TodayResponse maps feed asset codes (GRA, CEYREKALTIN, ...) to their quotes.
// Codes the server does not know are carried through and ignored downstream.
type TodayResponse map[string]Item

// UnmarshalJSON decodes only the object-valued entries. The feed mixes quote
// objects with scalar metadata fields (Update_Date and friends) at the top
// level, which must not fail the whole response.
func (r *TodayResponse) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	response := make(TodayResponse, len(raw))
	for code, message := range raw {
		var item Item
		if err := json.Unmarshal(message, &item); err != nil {
			continue
		}
		response[code] = item
	}
	*r = response
	return nil
}
