package domain

// Animal is the persona a participant fights under. The set is a
// closed enumeration; anything outside it is rejected at validation.
type Animal string

const (
	AnimalLion     Animal = "lion"
	AnimalOwl      Animal = "owl"
	AnimalFox      Animal = "fox"
	AnimalBear     Animal = "bear"
	AnimalRabbit   Animal = "rabbit"
	AnimalElephant Animal = "elephant"
	AnimalWolf     Animal = "wolf"
	AnimalEagle    Animal = "eagle"
	AnimalTiger    Animal = "tiger"
	AnimalShark    Animal = "shark"
	AnimalDragon   Animal = "dragon"
	AnimalSnake    Animal = "snake"
	AnimalGorilla  Animal = "gorilla"
	AnimalCheetah  Animal = "cheetah"
	AnimalRhino    Animal = "rhino"
	AnimalOctopus  Animal = "octopus"
	AnimalDolphin  Animal = "dolphin"
	AnimalTurtle   Animal = "turtle"
	AnimalPenguin  Animal = "penguin"
	AnimalFlamingo Animal = "flamingo"
)

var animalNames = map[Animal]string{
	AnimalLion:     "Lion",
	AnimalOwl:      "Owl",
	AnimalFox:      "Fox",
	AnimalBear:     "Bear",
	AnimalRabbit:   "Rabbit",
	AnimalElephant: "Elephant",
	AnimalWolf:     "Wolf",
	AnimalEagle:    "Eagle",
	AnimalTiger:    "Tiger",
	AnimalShark:    "Shark",
	AnimalDragon:   "Dragon",
	AnimalSnake:    "Snake",
	AnimalGorilla:  "Gorilla",
	AnimalCheetah:  "Cheetah",
	AnimalRhino:    "Rhino",
	AnimalOctopus:  "Octopus",
	AnimalDolphin:  "Dolphin",
	AnimalTurtle:   "Turtle",
	AnimalPenguin:  "Penguin",
	AnimalFlamingo: "Flamingo",
}

func (a Animal) IsValid() bool {
	_, ok := animalNames[a]
	return ok
}

func (a Animal) DisplayName() string {
	if name, ok := animalNames[a]; ok {
		return name
	}
	return string(a)
}

func AllAnimals() []Animal {
	animals := make([]Animal, 0, len(animalNames))
	for a := range animalNames {
		animals = append(animals, a)
	}
	return animals
}
