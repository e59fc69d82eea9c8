package enrichment

import (
	"fmt"
	"strings"

	"github.com/faunadex/faunadex-go/internal/fauna"
)

// staticProfiles holds curated data for the species the detector can emit,
// keyed by lowercase display name. These serve offline deployments and
// provider outages without producing an obviously broken catalog entry.
var staticProfiles = map[string]Profile{
	"perro": {
		ScientificName:         "Canis lupus familiaris",
		Description:            "El perro es un mamífero doméstico descendiente del lobo. Es uno de los animales de compañía más extendidos del mundo.",
		Class:                  fauna.ClassMammal,
		Habitat:                "Doméstico, presente en todos los continentes habitados",
		Diet:                   fauna.DietOmnivore,
		ConservationStatus:     fauna.StatusLeastConcern,
		FunFacts:               []string{"Su olfato es hasta 100.000 veces más sensible que el humano.", "Existen más de 300 razas reconocidas.", "Puede entender más de 150 palabras."},
		AverageLifespan:        "10-13 años",
		AverageWeight:          "5-40 kg",
		AverageHeight:          "15-80 cm",
		GeographicDistribution: "Mundial",
	},
	"gato": {
		ScientificName:         "Felis catus",
		Description:            "El gato doméstico es un felino de pequeño tamaño, ágil y territorial. Convive con el ser humano desde hace miles de años.",
		Class:                  fauna.ClassMammal,
		Habitat:                "Doméstico y urbano",
		Diet:                   fauna.DietCarnivore,
		ConservationStatus:     fauna.StatusLeastConcern,
		FunFacts:               []string{"Duerme entre 12 y 16 horas al día.", "Puede girar sus orejas 180 grados.", "Su ronroneo puede favorecer la regeneración ósea."},
		AverageLifespan:        "12-18 años",
		AverageWeight:          "3-5 kg",
		AverageHeight:          "23-25 cm",
		GeographicDistribution: "Mundial",
	},
	"vaca": {
		ScientificName:         "Bos taurus",
		Description:            "La vaca es un mamífero rumiante de gran tamaño domesticado para la producción de leche y carne.",
		Class:                  fauna.ClassMammal,
		Habitat:                "Praderas y explotaciones ganaderas",
		Diet:                   fauna.DietHerbivore,
		ConservationStatus:     fauna.StatusLeastConcern,
		FunFacts:               []string{"Tiene cuatro compartimentos en el estómago.", "Puede beber más de 100 litros de agua al día.", "Forma amistades duraderas dentro del rebaño."},
		AverageLifespan:        "18-22 años",
		AverageWeight:          "600-900 kg",
		AverageHeight:          "1,4-1,6 m",
		GeographicDistribution: "Mundial",
	},
	"ciervo": {
		ScientificName:         "Cervus elaphus",
		Description:            "El ciervo es un mamífero rumiante de bosque. Los machos renuevan su cornamenta cada año.",
		Class:                  fauna.ClassMammal,
		Habitat:                "Bosques templados y praderas",
		Diet:                   fauna.DietHerbivore,
		ConservationStatus:     fauna.StatusLeastConcern,
		FunFacts:               []string{"La cornamenta puede crecer 2 cm al día.", "Su berrea se oye a kilómetros de distancia.", "Es un excelente nadador."},
		AverageLifespan:        "10-20 años",
		AverageWeight:          "100-240 kg",
		AverageHeight:          "1,2-1,5 m",
		GeographicDistribution: "Europa, Asia y Norteamérica",
	},
	"pájaro": {
		ScientificName:         "Aves",
		Description:            "Las aves son vertebrados de sangre caliente con plumas y pico. La mayoría de las especies puede volar.",
		Class:                  fauna.ClassBird,
		Habitat:                "Presente en todos los ecosistemas",
		Diet:                   fauna.DietOmnivore,
		ConservationStatus:     fauna.StatusLeastConcern,
		FunFacts:               []string{"Existen más de 10.000 especies de aves.", "Son los descendientes vivos de los dinosaurios.", "Algunas migran miles de kilómetros cada año."},
		AverageLifespan:        "2-30 años según la especie",
		AverageWeight:          "10 g - 15 kg",
		AverageHeight:          "5 cm - 2,7 m",
		GeographicDistribution: "Mundial",
	},
	"elefante": {
		ScientificName:         "Loxodonta africana",
		Description:            "El elefante es el mamífero terrestre más grande. Vive en manadas matriarcales con fuertes lazos sociales.",
		Class:                  fauna.ClassMammal,
		Habitat:                "Sabanas, bosques y praderas",
		Diet:                   fauna.DietHerbivore,
		ConservationStatus:     fauna.StatusEndangered,
		FunFacts:               []string{"Su trompa tiene más de 40.000 músculos.", "Puede reconocerse en un espejo.", "Se comunica con infrasonidos a kilómetros de distancia."},
		AverageLifespan:        "60-70 años",
		AverageWeight:          "4.000-7.000 kg",
		AverageHeight:          "3-4 m",
		GeographicDistribution: "África subsahariana y sur de Asia",
	},
	"jirafa": {
		ScientificName:         "Giraffa camelopardalis",
		Description:            "La jirafa es el animal terrestre más alto. Su largo cuello le permite alimentarse de las copas de los árboles.",
		Class:                  fauna.ClassMammal,
		Habitat:                "Sabanas africanas",
		Diet:                   fauna.DietHerbivore,
		ConservationStatus:     fauna.StatusVulnerable,
		FunFacts:               []string{"Su lengua mide hasta 50 cm.", "Duerme menos de dos horas al día.", "Cada ejemplar tiene un patrón de manchas único."},
		AverageLifespan:        "20-25 años",
		AverageWeight:          "800-1.200 kg",
		AverageHeight:          "4,5-5,5 m",
		GeographicDistribution: "África subsahariana",
	},
	"cerdo": {
		ScientificName:         "Sus scrofa domesticus",
		Description:            "El cerdo es un mamífero doméstico omnívoro, sociable y notablemente inteligente.",
		Class:                  fauna.ClassMammal,
		Habitat:                "Doméstico, explotaciones ganaderas",
		Diet:                   fauna.DietOmnivore,
		ConservationStatus:     fauna.StatusLeastConcern,
		FunFacts:               []string{"Es más inteligente que la mayoría de los perros.", "No puede sudar, se refresca en el barro.", "Tiene un excelente sentido del olfato."},
		AverageLifespan:        "15-20 años",
		AverageWeight:          "50-350 kg",
		AverageHeight:          "50-100 cm",
		GeographicDistribution: "Mundial",
	},
	"oveja": {
		ScientificName:         "Ovis aries",
		Description:            "La oveja es un rumiante doméstico criado por su lana, leche y carne. Vive en rebaños con fuerte instinto gregario.",
		Class:                  fauna.ClassMammal,
		Habitat:                "Praderas y zonas de pastoreo",
		Diet:                   fauna.DietHerbivore,
		ConservationStatus:     fauna.StatusLeastConcern,
		FunFacts:               []string{"Reconoce hasta 50 caras de otras ovejas.", "Su lana crece sin parar toda la vida.", "Tiene un campo de visión de casi 300 grados."},
		AverageLifespan:        "10-12 años",
		AverageWeight:          "45-100 kg",
		AverageHeight:          "65-120 cm",
		GeographicDistribution: "Mundial",
	},
	"caballo": {
		ScientificName:         "Equus ferus caballus",
		Description:            "El caballo es un mamífero herbívoro domesticado hace más de 5.000 años, apreciado por su velocidad y resistencia.",
		Class:                  fauna.ClassMammal,
		Habitat:                "Praderas y estepas",
		Diet:                   fauna.DietHerbivore,
		ConservationStatus:     fauna.StatusLeastConcern,
		FunFacts:               []string{"Puede dormir de pie.", "Sus ojos son de los más grandes entre los mamíferos terrestres.", "Alcanza los 70 km/h al galope."},
		AverageLifespan:        "25-30 años",
		AverageWeight:          "380-1.000 kg",
		AverageHeight:          "1,4-1,8 m",
		GeographicDistribution: "Mundial",
	},
}

// fallbackProfile returns static data for a species, or a generic
// placeholder profile when the species is not in the curated set.
// Placeholder profiles are upgraded on a later successful enrichment.
func fallbackProfile(displayName string) *Profile {
	if p, ok := staticProfiles[strings.ToLower(displayName)]; ok {
		profile := p
		profile.Placeholder = false
		return &profile
	}

	return &Profile{
		ScientificName:     "Desconocido",
		Description:        fmt.Sprintf("%s es una especie registrada automáticamente. La información detallada se completará en un próximo avistamiento.", displayName),
		Class:              fauna.ClassMammal,
		Habitat:            "Desconocido",
		Diet:               fauna.DietOmnivore,
		ConservationStatus: fauna.StatusNotEvaluated,
		FunFacts:           []string{fmt.Sprintf("%s fue añadido al catálogo por el sistema de reconocimiento.", displayName)},
		Placeholder:        true,
	}
}
