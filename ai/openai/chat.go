// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package openai

import (
	"github.com/poiesic/recollect/ai"
	"github.com/poiesic/recollect/ai/langchain"
	"github.com/tmc/langchaingo/llms/openai"
)

// NewChatModel creates a chat model backed by the OpenAI API.
//
// Returns ai.ChatModel interface to enforce abstraction.
func NewChatModel(config *ai.Config) (ai.ChatModel, error) {
	client, err := openai.New(
		openai.WithToken(config.OpenAIKey),
		openai.WithModel(config.ChatModel),
	)
	if err != nil {
		return nil, err
	}
	return langchain.NewChatModel(client, "openai-chat"), nil
}

// NewVisionAnalyzer creates an image description service backed by an
// OpenAI multimodal model.
//
// Returns ai.VisionAnalyzer interface to enforce abstraction.
func NewVisionAnalyzer(config *ai.Config) (ai.VisionAnalyzer, error) {
	model := config.VisionModel
	if model == "" {
		model = config.ChatModel
	}
	client, err := openai.New(
		openai.WithToken(config.OpenAIKey),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, err
	}
	return langchain.NewVisionAnalyzer(client, "openai-vision"), nil
}
