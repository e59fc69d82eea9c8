package resolver

import (
	"strings"
	"unicode"
)

// synonyms maps a lowercase raw model label to catalog names it is known
// to appear under. Synonyms are tried before the raw label itself, so the
// Spanish catalog name leads each list.
var synonyms = map[string][]string{
	"dog":      {"Perro", "Dog"},
	"cats":     {"Gato", "Cat", "Cats"},
	"cat":      {"Gato", "Cat"},
	"cow":      {"Vaca", "Cow"},
	"deer":     {"Ciervo", "Venado", "Deer"},
	"bird":     {"Pájaro", "Ave", "Bird"},
	"elephant": {"Elefante", "Elephant"},
	"giraffle": {"Jirafa", "Giraffe"},
	"giraffe":  {"Jirafa", "Giraffe"},
	"pig":      {"Cerdo", "Pig"},
	"sheep":    {"Oveja", "Sheep"},
	"horse":    {"Caballo", "Horse"},
	"wolf":     {"Lobo", "Wolf"},
	"fox":      {"Zorro", "Fox"},
	"bear":     {"Oso", "Bear"},
	"rabbit":   {"Conejo", "Rabbit"},
	"lion":     {"León", "Lion"},
	"tiger":    {"Tigre", "Tiger"},
	"monkey":   {"Mono", "Monkey"},
	"duck":     {"Pato", "Duck"},
	"goat":     {"Cabra", "Goat"},
	"chicken":  {"Gallina", "Chicken"},
	"snake":    {"Serpiente", "Snake"},
	"turtle":   {"Tortuga", "Turtle"},
	"fish":     {"Pez", "Fish"},
}

// displayNames translates a lowercase raw label into the catalog display
// language. Unmapped labels are title-cased as-is.
var displayNames = map[string]string{
	"dog":          "Perro",
	"cats":         "Gato",
	"cat":          "Gato",
	"cow":          "Vaca",
	"deer":         "Ciervo",
	"bird":         "Pájaro",
	"elephant":     "Elefante",
	"giraffle":     "Jirafa",
	"giraffe":      "Jirafa",
	"pig":          "Cerdo",
	"sheep":        "Oveja",
	"horse":        "Caballo",
	"wolf":         "Lobo",
	"fox":          "Zorro",
	"bear":         "Oso",
	"rabbit":       "Conejo",
	"lion":         "León",
	"tiger":        "Tigre",
	"leopard":      "Leopardo",
	"monkey":       "Mono",
	"gorilla":      "Gorila",
	"duck":         "Pato",
	"goat":         "Cabra",
	"chicken":      "Gallina",
	"turkey":       "Pavo",
	"snake":        "Serpiente",
	"turtle":       "Tortuga",
	"tortoise":     "Tortuga",
	"fish":         "Pez",
	"whale":        "Ballena",
	"dolphin":      "Delfín",
	"seal":         "Foca",
	"sea lion":     "León Marino",
	"shark":        "Tiburón",
	"eagle":        "Águila",
	"owl":          "Búho",
	"parrot":       "Loro",
	"penguin":      "Pingüino",
	"flamingo":     "Flamenco",
	"zebra":        "Cebra",
	"camel":        "Camello",
	"kangaroo":     "Canguro",
	"squirrel":     "Ardilla",
	"mouse":        "Ratón",
	"rat":          "Rata",
	"bat":          "Murciélago",
	"frog":         "Rana",
	"crocodile":    "Cocodrilo",
	"alligator":    "Caimán",
	"hippopotamus": "Hipopótamo",
	"rhinoceros":   "Rinoceronte",
	"donkey":       "Burro",
	"llama":        "Llama",
	"panda":        "Panda",
	"koala":        "Koala",
	"butterfly":    "Mariposa",
	"bee":          "Abeja",
	"spider":       "Araña",
	"octopus":      "Pulpo",
	"crab":         "Cangrejo",
}

// DisplayName translates a raw label into the catalog display language.
func DisplayName(rawLabel string) string {
	if name, ok := displayNames[strings.ToLower(rawLabel)]; ok {
		return name
	}
	return titleCase(rawLabel)
}

// titleCase upper-cases the first letter of each space separated word.
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
