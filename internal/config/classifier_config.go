package config

type ClassifierConfig interface {
	GetOllamaHost() string
	GetClassifierModel() string
}

type Classifier struct{}

var _ ClassifierConfig = Classifier{}

func (Classifier) GetOllamaHost() string {
	return GetEnv("OLLAMA_HOST", "http://127.0.0.1:11434")
}

func (Classifier) GetClassifierModel() string {
	return GetEnv("OLLAMA_MODEL", "llama3.2:1b-instruct-q4_0")
}
