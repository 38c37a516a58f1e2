package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	_ "github.com/Maazpendari01/InterviewQi/internal/llm/gemini"
	_ "github.com/Maazpendari01/InterviewQi/internal/llm/groq"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
