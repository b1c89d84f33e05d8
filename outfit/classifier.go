package outfit

import "strings"

// Classification is the result of mapping a raw clothing type token into the
// engine's category/layer/warmth model.
type Classification struct {
	Category  CoreCategory
	Layer     LayerLevel
	Warmth    Warmth
	CanLayer  bool
	MaxLayers int
}

// classificationTable is the single source of truth for type classification.
// Keyed by normalized type token; everything not listed classifies to
// CategoryOther instead of failing.
var classificationTable = map[string]Classification{
	// base tops
	"t-shirt":  {CategoryTop, LayerBase, WarmthLight, true, 1},
	"tshirt":   {CategoryTop, LayerBase, WarmthLight, true, 1},
	"tank-top": {CategoryTop, LayerBase, WarmthLight, true, 1},
	"top":      {CategoryTop, LayerBase, WarmthLight, true, 1},
	"henley":   {CategoryTop, LayerBase, WarmthLight, true, 1},

	// inner tops
	"shirt":      {CategoryTop, LayerInner, WarmthLight, true, 2},
	"blouse":     {CategoryTop, LayerInner, WarmthLight, true, 2},
	"polo":       {CategoryTop, LayerInner, WarmthLight, true, 2},
	"dress":      {CategoryTop, LayerInner, WarmthLight, true, 1},
	"turtleneck": {CategoryTop, LayerInner, WarmthMedium, true, 2},

	// mid layers
	"sweater":    {CategoryTop, LayerMid, WarmthMedium, true, 2},
	"hoodie":     {CategoryTop, LayerMid, WarmthMedium, true, 2},
	"cardigan":   {CategoryTop, LayerMid, WarmthMedium, true, 2},
	"sweatshirt": {CategoryTop, LayerMid, WarmthMedium, true, 2},
	"fleece":     {CategoryTop, LayerMid, WarmthMedium, true, 2},
	"vest":       {CategoryJacket, LayerMid, WarmthMedium, true, 1},

	// outerwear
	"jacket":      {CategoryJacket, LayerOuter, WarmthMedium, true, 1},
	"blazer":      {CategoryJacket, LayerOuter, WarmthMedium, true, 1},
	"windbreaker": {CategoryJacket, LayerOuter, WarmthLight, true, 1},
	"raincoat":    {CategoryJacket, LayerOuter, WarmthMedium, true, 1},
	"coat":        {CategoryJacket, LayerOuter, WarmthHeavy, true, 1},
	"parka":       {CategoryJacket, LayerOuter, WarmthHeavy, true, 1},
	"puffer":      {CategoryJacket, LayerOuter, WarmthHeavy, true, 1},

	// bottoms
	"pants":       {CategoryBottom, LayerBottom, WarmthMedium, false, 1},
	"jeans":       {CategoryBottom, LayerBottom, WarmthMedium, false, 1},
	"trousers":    {CategoryBottom, LayerBottom, WarmthMedium, false, 1},
	"slacks":      {CategoryBottom, LayerBottom, WarmthMedium, false, 1},
	"chinos":      {CategoryBottom, LayerBottom, WarmthMedium, false, 1},
	"shorts":      {CategoryBottom, LayerBottom, WarmthLight, false, 1},
	"skirt":       {CategoryBottom, LayerBottom, WarmthLight, false, 1},
	"joggers":     {CategoryBottom, LayerBottom, WarmthMedium, false, 1},
	"sweatpants":  {CategoryBottom, LayerBottom, WarmthMedium, false, 1},
	"track-pants": {CategoryBottom, LayerBottom, WarmthMedium, false, 1},
	"leggings":    {CategoryBottom, LayerBottom, WarmthLight, true, 1},

	// footwear
	"shoes":      {CategoryFootwear, LayerFootwear, WarmthLight, false, 1},
	"sneakers":   {CategoryFootwear, LayerFootwear, WarmthLight, false, 1},
	"trainers":   {CategoryFootwear, LayerFootwear, WarmthLight, false, 1},
	"boots":      {CategoryFootwear, LayerFootwear, WarmthMedium, false, 1},
	"sandals":    {CategoryFootwear, LayerFootwear, WarmthLight, false, 1},
	"flip-flops": {CategoryFootwear, LayerFootwear, WarmthLight, false, 1},
	"heels":      {CategoryFootwear, LayerFootwear, WarmthLight, false, 1},
	"loafers":    {CategoryFootwear, LayerFootwear, WarmthLight, false, 1},
	"oxfords":    {CategoryFootwear, LayerFootwear, WarmthLight, false, 1},

	// accessories
	"hat":        {CategoryAccessory, LayerAccessory, WarmthLight, false, 1},
	"cap":        {CategoryAccessory, LayerAccessory, WarmthLight, false, 1},
	"beanie":     {CategoryAccessory, LayerAccessory, WarmthMedium, false, 1},
	"scarf":      {CategoryAccessory, LayerAccessory, WarmthMedium, false, 1},
	"gloves":     {CategoryAccessory, LayerAccessory, WarmthMedium, false, 1},
	"belt":       {CategoryAccessory, LayerAccessory, WarmthLight, false, 1},
	"watch":      {CategoryAccessory, LayerAccessory, WarmthLight, false, 1},
	"tie":        {CategoryAccessory, LayerAccessory, WarmthLight, false, 1},
	"sunglasses": {CategoryAccessory, LayerAccessory, WarmthLight, false, 1},
	"bag":        {CategoryAccessory, LayerAccessory, WarmthLight, false, 1},
}

var otherClassification = Classification{CategoryOther, LayerAccessory, WarmthLight, false, 1}

// Classify maps a raw type token to its classification. Pure and total:
// unknown tokens land in CategoryOther. Name-based subtype refinement lives
// separately, so this stays a plain table lookup.
func Classify(rawType string) Classification {
	if c, ok := classificationTable[normalizeToken(rawType)]; ok {
		return c
	}
	return otherClassification
}

// Footwear subtypes used for cardinality uniqueness.
const (
	SubtypeSneakers   = "sneakers"
	SubtypeDressShoes = "dress_shoes"
	SubtypeBoots      = "boots"
	SubtypeSandals    = "sandals"
	SubtypeOtherShoes = "other"
)

// refineSubtype derives a subtype from name substrings, e.g. a "shirt" named
// "Blue Button Down" becomes a dress_shirt and a "shoes" item named
// "Air Max Sneaker" becomes sneakers.
func refineSubtype(rawType, name string, category CoreCategory) string {
	token := normalizeToken(rawType)
	lower := strings.ToLower(name)

	switch category {
	case CategoryTop:
		if token == "shirt" && (strings.Contains(lower, "dress") || strings.Contains(lower, "button")) {
			return "dress_shirt"
		}
	case CategoryBottom:
		switch token {
		case "joggers", "sweatpants", "track-pants":
			return "athletic_pants"
		}
		if strings.Contains(lower, "jogger") || strings.Contains(lower, "track") || strings.Contains(lower, "athletic") {
			return "athletic_pants"
		}
		if token == "pants" && (strings.Contains(lower, "dress") || strings.Contains(lower, "slack")) {
			return "dress_pants"
		}
	case CategoryFootwear:
		return footwearSubtype(token, lower)
	}
	return ""
}

func footwearSubtype(token, lowerName string) string {
	switch token {
	case "sneakers", "trainers":
		return SubtypeSneakers
	case "boots":
		return SubtypeBoots
	case "sandals", "flip-flops":
		return SubtypeSandals
	case "heels", "loafers", "oxfords":
		return SubtypeDressShoes
	}
	switch {
	case strings.Contains(lowerName, "sneaker"), strings.Contains(lowerName, "trainer"), strings.Contains(lowerName, "running"):
		return SubtypeSneakers
	case strings.Contains(lowerName, "boot"):
		return SubtypeBoots
	case strings.Contains(lowerName, "sandal"), strings.Contains(lowerName, "flip"):
		return SubtypeSandals
	case strings.Contains(lowerName, "oxford"), strings.Contains(lowerName, "loafer"),
		strings.Contains(lowerName, "dress"), strings.Contains(lowerName, "heel"):
		return SubtypeDressShoes
	}
	return SubtypeOtherShoes
}

func normalizeToken(token string) string {
	token = strings.ToLower(strings.TrimSpace(token))
	token = strings.ReplaceAll(token, "_", "-")
	token = strings.ReplaceAll(token, " ", "-")
	return token
}
