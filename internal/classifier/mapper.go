package classifier

import "strings"

// keywordMapping pairs a substring keyword with the canonical species it
// maps to. The mappings slice is scanned top to bottom per candidate, so
// order is part of the contract: "whale" must come before "wolf", "fox"
// before "ox", "hedgehog" before "hog", "anteater" and "panda" before
// "ant", "snake" before "rat". Reordering entries changes classification
// outcomes.
type keywordMapping struct {
	Keyword string
	Species string
}

var mappings = []keywordMapping{
	// marine mammals first, compound labels like "sea wolf" and
	// "killer whale" must not fall through to land species
	{"whale", "Whale"},
	{"dolphin", "Dolphin"},
	{"sea lion", "Sea Lion"},
	{"seal", "Seal"},
	{"shark", "Shark"},
	{"otter", "Otter"},

	// big cats before the generic cat entries
	{"tiger", "Tiger"},
	{"lion", "Lion"},
	{"leopard", "Leopard"},
	{"jaguar", "Jaguar"},
	{"cheetah", "Cheetah"},
	{"lynx", "Lynx"},
	{"cougar", "Cougar"},
	{"cattle", "Cow"},
	{"tabby", "Cats"},
	{"siamese", "Cats"},
	{"persian cat", "Cats"},
	{"egyptian cat", "Cats"},
	{"kitten", "Cats"},
	{"cat", "Cats"},

	// canines, breed names cover the common classifier vocabulary
	{"wolf", "Wolf"},
	{"coyote", "Coyote"},
	{"retriever", "Dog"},
	{"terrier", "Dog"},
	{"shepherd", "Dog"},
	{"spaniel", "Dog"},
	{"poodle", "Dog"},
	{"bulldog", "Dog"},
	{"beagle", "Dog"},
	{"husky", "Dog"},
	{"dalmatian", "Dog"},
	{"chihuahua", "Dog"},
	{"puppy", "Dog"},
	{"dog", "Dog"},
	{"fox", "Fox"},

	// large herbivores, "elephant" must precede the late "ant" entry
	{"elephant", "Elephant"},
	{"rhinoceros", "Rhinoceros"},
	{"hippopotamus", "Hippopotamus"},
	{"giraffe", "Giraffle"},
	{"camel", "Camel"},
	{"alpaca", "Llama"},
	{"llama", "Llama"},
	{"zebra", "Zebra"},
	{"horse", "Horse"},
	{"donkey", "Donkey"},
	{"mule", "Donkey"},
	{"bison", "Bison"},
	{"buffalo", "Buffalo"},
	{"ox", "Cow"},
	{"bull", "Cow"},
	{"calf", "Cow"},
	{"cow", "Cow"},
	{"goat", "Goat"},
	{"ram", "Sheep"},
	{"lamb", "Sheep"},
	{"sheep", "Sheep"},
	{"hedgehog", "Hedgehog"},
	{"pigeon", "Bird"},
	{"boar", "Pig"},
	{"hog", "Pig"},
	{"sow", "Pig"},
	{"pig", "Pig"},
	{"moose", "Moose"},
	{"elk", "Deer"},
	{"gazelle", "Gazelle"},
	{"impala", "Antelope"},
	{"antelope", "Antelope"},
	{"deer", "Deer"},

	// primates and other mammals
	{"gorilla", "Gorilla"},
	{"chimpanzee", "Chimpanzee"},
	{"orangutan", "Orangutan"},
	{"baboon", "Baboon"},
	{"macaque", "Monkey"},
	{"lemur", "Lemur"},
	{"monkey", "Monkey"},
	{"panda", "Panda"},
	{"bear", "Bear"},
	{"raccoon", "Raccoon"},
	{"skunk", "Skunk"},
	{"badger", "Badger"},
	{"weasel", "Weasel"},
	{"hare", "Rabbit"},
	{"rabbit", "Rabbit"},
	{"squirrel", "Squirrel"},
	{"beaver", "Beaver"},
	{"porcupine", "Porcupine"},
	{"hamster", "Hamster"},
	{"mouse", "Mouse"},
	{"kangaroo", "Kangaroo"},
	{"koala", "Koala"},
	{"wombat", "Wombat"},
	{"sloth", "Sloth"},
	{"armadillo", "Armadillo"},
	{"anteater", "Anteater"},
	{"bat", "Bat"},

	// birds, specific species before the generic "bird"
	{"eagle", "Eagle"},
	{"hawk", "Hawk"},
	{"falcon", "Falcon"},
	{"fowl", "Chicken"},
	{"owl", "Owl"},
	{"macaw", "Parrot"},
	{"cockatoo", "Parrot"},
	{"parrot", "Parrot"},
	{"toucan", "Toucan"},
	{"flamingo", "Flamingo"},
	{"penguin", "Penguin"},
	{"ostrich", "Ostrich"},
	{"peacock", "Peacock"},
	{"swan", "Swan"},
	{"goose", "Goose"},
	{"duck", "Duck"},
	{"rooster", "Chicken"},
	{"hen", "Chicken"},
	{"chicken", "Chicken"},
	{"turkey", "Turkey"},
	{"pelican", "Pelican"},
	{"stork", "Stork"},
	{"heron", "Heron"},
	{"crow", "Crow"},
	{"magpie", "Magpie"},
	{"hummingbird", "Hummingbird"},
	{"woodpecker", "Woodpecker"},
	{"sparrow", "Bird"},
	{"finch", "Bird"},
	{"robin", "Bird"},
	{"jay", "Bird"},
	{"bird", "Bird"},

	// reptiles and amphibians, "snake" before "rat" keeps
	// "rattlesnake" out of the rodents
	{"crocodile", "Crocodile"},
	{"alligator", "Alligator"},
	{"tortoise", "Tortoise"},
	{"turtle", "Turtle"},
	{"iguana", "Iguana"},
	{"gecko", "Gecko"},
	{"chameleon", "Chameleon"},
	{"python", "Snake"},
	{"cobra", "Snake"},
	{"viper", "Snake"},
	{"boa constrictor", "Snake"},
	{"snake", "Snake"},
	{"lizard", "Lizard"},
	{"salamander", "Salamander"},
	{"frog", "Frog"},
	{"toad", "Toad"},
	{"rat", "Rat"},

	// aquatic and invertebrates
	{"goldfish", "Fish"},
	{"clownfish", "Fish"},
	{"salmon", "Fish"},
	{"trout", "Fish"},
	{"fish", "Fish"},
	{"octopus", "Octopus"},
	{"squid", "Squid"},
	{"jellyfish", "Jellyfish"},
	{"starfish", "Starfish"},
	{"crab", "Crab"},
	{"lobster", "Lobster"},
	{"shrimp", "Shrimp"},
	{"butterfly", "Butterfly"},
	{"moth", "Moth"},
	{"beetle", "Beetle"},
	{"bee", "Bee"},
	{"wasp", "Wasp"},
	{"spider", "Spider"},
	{"scorpion", "Scorpion"},
	{"snail", "Snail"},
	{"ant", "Ant"},
}

// denyList filters non-animal classes a general purpose classifier emits
// for road scenes. A top-1 label containing any of these yields no result.
var denyList = []string{
	"car",
	"truck",
	"bus",
	"van",
	"jeep",
	"cab",
	"taxi",
	"motorcycle",
	"moped",
	"scooter",
	"bicycle",
	"tricycle",
	"train",
	"locomotive",
	"airplane",
	"airliner",
	"helicopter",
	"boat",
	"ship",
	"canoe",
	"tractor",
	"trailer",
	"ambulance",
	"limousine",
	"convertible",
	"snowplow",
	"forklift",
	"tank",
}

// mapCandidates maps scored open vocabulary candidates to a canonical
// species. Candidates are visited in score order; for each one the keyword
// list is scanned top to bottom and the first containment wins. When no
// keyword matches any candidate, the top ranked label is accepted as-is
// unless it names a vehicle. An empty return means no result.
func mapCandidates(candidates []candidate) string {
	for _, cand := range candidates {
		label := strings.ToLower(cand.Label)
		for _, m := range mappings {
			if strings.Contains(label, m.Keyword) {
				return m.Species
			}
		}
	}

	if len(candidates) == 0 {
		return ""
	}

	top := strings.ToLower(candidates[0].Label)
	for _, denied := range denyList {
		if strings.Contains(top, denied) {
			return ""
		}
	}
	return candidates[0].Label
}
