package groq

import "github.com/Maazpendari01/InterviewQi/internal/llm"

// Register Groq provider on package import
func init() {
	llm.RegisterProvider("groq", func() (llm.Provider, error) {
		config, err := NewConfig()
		if err != nil {
			return nil, err
		}
		return NewClient(config), nil
	})
}
