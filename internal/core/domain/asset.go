package domain

// AssetKind tags the transfer capability needed to move an asset.
type AssetKind int

const (
	AssetKindFungible AssetKind = iota
	AssetKindUnique
	AssetKindSemiFungible
	// AssetKindLegacy is the two-phase offer/claim external asset type.
	// Taking custody of it requires a pre-registered zero-price sale offer
	// scoped to the custodian; paying it out is a single plain transfer.
	AssetKindLegacy
)

var (
	assetKindToString = map[AssetKind]string{
		AssetKindFungible:     "FUNGIBLE",
		AssetKindUnique:       "UNIQUE",
		AssetKindSemiFungible: "SEMI_FUNGIBLE",
		AssetKindLegacy:       "LEGACY",
	}
	stringToAssetKind = map[string]AssetKind{
		"FUNGIBLE":      AssetKindFungible,
		"UNIQUE":        AssetKindUnique,
		"SEMI_FUNGIBLE": AssetKindSemiFungible,
		"LEGACY":        AssetKindLegacy,
	}
)

func (k AssetKind) String() string {
	str, ok := assetKindToString[k]
	if !ok {
		return "UNKNOWN"
	}
	return str
}

// AssetKindFromString returns the kind matching the given label.
func AssetKindFromString(kind string) (AssetKind, bool) {
	k, ok := stringToAssetKind[kind]
	return k, ok
}

// Asset is a committed manifest entry: a claim sourced from one participant
// and destined for another, tracked with its custody flag.
type Asset struct {
	Kind        AssetKind
	Reference   string
	UnitId      uint64
	Quantity    uint64
	Source      string
	Destination string
	Deposited   bool
}

// AssetDescriptor identifies the concrete asset a caller wants to deposit.
type AssetDescriptor struct {
	Kind      AssetKind
	Reference string
	UnitId    uint64
	Quantity  uint64
	// Recipient optionally restates the manifest-bound destination. When
	// set, it must match the entry being satisfied.
	Recipient string
}

// Matches reports whether the descriptor identifies this manifest entry.
// Quantity is ignored for unique-id kinds.
func (a *Asset) Matches(d AssetDescriptor) bool {
	if a.Kind != d.Kind || a.Reference != d.Reference || a.UnitId != d.UnitId {
		return false
	}
	if a.Kind != AssetKindUnique && a.Quantity != d.Quantity {
		return false
	}
	if d.Recipient != "" && a.Destination != d.Recipient {
		return false
	}
	return true
}

// Validate checks the structural soundness of a manifest entry.
func (a *Asset) Validate() error {
	if a.Reference == "" {
		return ErrInvalidAssetReference
	}
	if a.Kind != AssetKindUnique && a.Quantity == 0 {
		return ErrInvalidAssetQuantity
	}
	return nil
}
