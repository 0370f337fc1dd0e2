package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"kitcompanion"
)

// contentlint validates a content feed directory before it is published:
// schema conformance, structural checks, and duplicate question detection.
// The webserver never needs this to be run — a bad feed degrades to an
// empty collection at load time — but a linted feed is a non-empty one.

func main() {
	var (
		contentDir = flag.String("dir", "content", "Content feed directory to lint")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()
	kitcompanion.SetVerbose(*verbose)

	problems := 0

	for _, category := range kitcompanion.Categories {
		path := filepath.Join(*contentDir, string(category)+".json")
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Printf("%s: unreadable: %v\n", path, err)
			problems++
			continue
		}
		examples, err := kitcompanion.ParseExamples(data)
		if err != nil {
			fmt.Printf("%s: %v\n", path, err)
			problems++
			continue
		}
		seen := make(map[string]int)
		for i, example := range examples {
			for _, problem := range kitcompanion.CheckExample(example) {
				fmt.Printf("%s: example %d (%s): %s\n", path, i, example.ID, problem)
				problems++
			}
			if example.Type != category {
				fmt.Printf("%s: example %d (%s): type %q does not match feed category %q\n", path, i, example.ID, example.Type, category)
				problems++
			}
			if first, dup := seen[example.ID]; dup {
				fmt.Printf("%s: example %d reuses id %q of example %d\n", path, i, example.ID, first)
				problems++
			} else {
				seen[example.ID] = i
			}
		}
		fmt.Printf("%s: %d examples\n", path, len(examples))
	}

	questionsPath := filepath.Join(*contentDir, kitcompanion.QuestionsFeed+".json")
	data, err := os.ReadFile(questionsPath)
	if err != nil {
		fmt.Printf("%s: unreadable: %v\n", questionsPath, err)
		problems++
	} else if questions, err := kitcompanion.ParseQuestions(data); err != nil {
		fmt.Printf("%s: %v\n", questionsPath, err)
		problems++
	} else {
		for i, question := range questions {
			for _, problem := range kitcompanion.CheckQuestion(question) {
				fmt.Printf("%s: question %d: %s\n", questionsPath, i, problem)
				problems++
			}
		}
		for _, pair := range kitcompanion.FindDuplicateQuestions(questions) {
			fmt.Printf("%s: question %d duplicates question %d\n", questionsPath, pair[1], pair[0])
			problems++
		}
		fmt.Printf("%s: %d questions\n", questionsPath, len(questions))
	}

	if problems > 0 {
		fmt.Printf("contentlint: %d problems\n", problems)
		os.Exit(1)
	}
	fmt.Println("contentlint: all feeds clean")
}
