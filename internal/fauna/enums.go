package fauna

// AnimalClass is the taxonomic class of a catalog entry.
type AnimalClass string

const (
	ClassMammal       AnimalClass = "MAMMAL"
	ClassBird         AnimalClass = "BIRD"
	ClassReptile      AnimalClass = "REPTILE"
	ClassAmphibian    AnimalClass = "AMPHIBIAN"
	ClassFish         AnimalClass = "FISH"
	ClassInvertebrate AnimalClass = "INVERTEBRATE"
)

var animalClassDisplay = map[AnimalClass]string{
	ClassMammal:       "Mamífero",
	ClassBird:         "Ave",
	ClassReptile:      "Reptil",
	ClassAmphibian:    "Anfibio",
	ClassFish:         "Pez",
	ClassInvertebrate: "Invertebrado",
}

// Display returns the catalog display name for the class.
func (c AnimalClass) Display() string {
	if d, ok := animalClassDisplay[c]; ok {
		return d
	}
	return string(c)
}

// DietType is the feeding category of a catalog entry.
type DietType string

const (
	DietCarnivore   DietType = "CARNIVORE"
	DietHerbivore   DietType = "HERBIVORE"
	DietOmnivore    DietType = "OMNIVORE"
	DietInsectivore DietType = "INSECTIVORE"
	DietPiscivore   DietType = "PISCIVORE"
)

var dietDisplay = map[DietType]string{
	DietCarnivore:   "Carnívoro",
	DietHerbivore:   "Herbívoro",
	DietOmnivore:    "Omnívoro",
	DietInsectivore: "Insectívoro",
	DietPiscivore:   "Piscívoro",
}

// Display returns the catalog display name for the diet.
func (d DietType) Display() string {
	if s, ok := dietDisplay[d]; ok {
		return s
	}
	return string(d)
}

// ConservationStatus is the IUCN conservation category of a catalog entry.
type ConservationStatus string

const (
	StatusExtinct              ConservationStatus = "EXTINCT"
	StatusExtinctInWild        ConservationStatus = "EXTINCT_IN_WILD"
	StatusCriticallyEndangered ConservationStatus = "CRITICALLY_ENDANGERED"
	StatusEndangered           ConservationStatus = "ENDANGERED"
	StatusVulnerable           ConservationStatus = "VULNERABLE"
	StatusNearThreatened       ConservationStatus = "NEAR_THREATENED"
	StatusLeastConcern         ConservationStatus = "LEAST_CONCERN"
	StatusDataDeficient        ConservationStatus = "DATA_DEFICIENT"
	StatusNotEvaluated         ConservationStatus = "NOT_EVALUATED"
)

var conservationDisplay = map[ConservationStatus]string{
	StatusExtinct:              "Extinto",
	StatusExtinctInWild:        "Extinto en Estado Silvestre",
	StatusCriticallyEndangered: "En Peligro Crítico",
	StatusEndangered:           "En Peligro",
	StatusVulnerable:           "Vulnerable",
	StatusNearThreatened:       "Casi Amenazado",
	StatusLeastConcern:         "Preocupación Menor",
	StatusDataDeficient:        "Datos Insuficientes",
	StatusNotEvaluated:         "No Evaluado",
}

// Display returns the catalog display name for the status.
func (s ConservationStatus) Display() string {
	if d, ok := conservationDisplay[s]; ok {
		return d
	}
	return string(s)
}

// IsEndangered reports whether the status is an endangered category.
func (s ConservationStatus) IsEndangered() bool {
	switch s {
	case StatusCriticallyEndangered, StatusEndangered, StatusVulnerable:
		return true
	default:
		return false
	}
}
