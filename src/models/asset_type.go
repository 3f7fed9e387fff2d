package models

// AssetType identifies one of the fixed set of tradable instruments the
// tracker knows about. Turkish lira is the base currency; every price in the
// system is expressed in TRY.
type AssetType string

const (
	AssetUSD            AssetType = "usd"
	AssetEUR            AssetType = "eur"
	AssetTL             AssetType = "tl"
	AssetGumus          AssetType = "gumus"
	AssetGold           AssetType = "gold"
	AssetQuarterGold    AssetType = "quarter_gold"
	AssetHalfGold       AssetType = "half_gold"
	AssetFullGold       AssetType = "full_gold"
	AssetCumhuriyetGold AssetType = "cumhuriyet_gold"
	AssetAtaGold        AssetType = "ata_gold"
	AssetAyar14Gold     AssetType = "ayar_14_gold"
	AssetAyar18Gold     AssetType = "ayar_18_gold"
	AssetAyar22Bilezik  AssetType = "ayar_22_bilezik"
)

// AssetInfo carries the display metadata of an asset type. FractionDigits is a
// read-side rounding rule only and never affects stored precision.
type AssetInfo struct {
	Name           string `json:"name"`
	Unit           string `json:"unit"`
	FractionDigits int    `json:"fractionDigits"`
}

var assetCatalog = map[AssetType]AssetInfo{
	AssetUSD:            {Name: "Amerikan Doları", Unit: "$", FractionDigits: 2},
	AssetEUR:            {Name: "Euro", Unit: "€", FractionDigits: 2},
	AssetTL:             {Name: "Türk Lirası", Unit: "₺", FractionDigits: 2},
	AssetGumus:          {Name: "Gümüş", Unit: "gr", FractionDigits: 4},
	AssetGold:           {Name: "Gram Altın", Unit: "gr", FractionDigits: 4},
	AssetQuarterGold:    {Name: "Çeyrek Altın", Unit: "adet", FractionDigits: 4},
	AssetHalfGold:       {Name: "Yarım Altın", Unit: "adet", FractionDigits: 4},
	AssetFullGold:       {Name: "Tam Altın", Unit: "adet", FractionDigits: 4},
	AssetCumhuriyetGold: {Name: "Cumhuriyet Altını", Unit: "adet", FractionDigits: 4},
	AssetAtaGold:        {Name: "Ata Altın", Unit: "adet", FractionDigits: 4},
	AssetAyar14Gold:     {Name: "14 Ayar Altın", Unit: "gr", FractionDigits: 4},
	AssetAyar18Gold:     {Name: "18 Ayar Altın", Unit: "gr", FractionDigits: 4},
	AssetAyar22Bilezik:  {Name: "22 Ayar Bilezik", Unit: "gr", FractionDigits: 4},
}

// allAssetTypes is the stable iteration order used for baseline price tables
// and summaries.
var allAssetTypes = []AssetType{
	AssetUSD,
	AssetEUR,
	AssetTL,
	AssetGumus,
	AssetGold,
	AssetQuarterGold,
	AssetHalfGold,
	AssetFullGold,
	AssetCumhuriyetGold,
	AssetAtaGold,
	AssetAyar14Gold,
	AssetAyar18Gold,
	AssetAyar22Bilezik,
}

// AllAssetTypes returns every known asset type in catalog order.
func AllAssetTypes() []AssetType {
	types := make([]AssetType, len(allAssetTypes))
	copy(types, allAssetTypes)
	return types
}

// Valid reports whether t is part of the closed asset enumeration.
func (t AssetType) Valid() bool {
	_, ok := assetCatalog[t]
	return ok
}

// Info returns the display metadata of the asset type.
func (t AssetType) Info() AssetInfo {
	return assetCatalog[t]
}
