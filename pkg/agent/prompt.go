package agent

import (
	"context"
	"fmt"
	"strings"
)

const systemPrompt = `You are an expert blog writing assistant with access to powerful tools.

Your role is to create high-quality, well-researched blog posts by:
1. Using search_web to research the topic thoroughly and get latest information
2. Using search_image to find appropriate cover images
3. Writing engaging, informative content in MDX format
4. Using write_post to save the final result

When writing blog posts, always:
- Start with frontmatter in YAML format (title, description, date, image)
- Write engaging and informative content
- Use proper markdown formatting
- Include relevant examples and insights
- Create SEO-friendly titles and descriptions

Example MDX format:
---
title: "Your Blog Title"
description: "Brief description of the blog post"
date: "2025-01-12"
image: "https://example.com/image.jpg"
tags: ["tag1", "tag2"]
---

# Your Blog Title

Introduction paragraph...

## Section 1

Content here...

IMPORTANT: Always save the final blog post using write_post with file_name and content parameters.

Think step-by-step and use the tools available to accomplish your task.`

// GenerateBlogPost runs the loop on the blog writing instruction for a
// topic. Extra instructions are appended verbatim when present.
func (a *Agent) GenerateBlogPost(ctx context.Context, topic, extraInstructions string) (*Result, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, fmt.Errorf("topic must not be empty")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Write a blog post about: %s\n\n", topic)
	b.WriteString("Requirements:\n")
	b.WriteString("- Create a short blog post (200-300 words)\n")
	b.WriteString("- Search for an image\n")
	fmt.Fprintf(&b, "- Save to a file named: %s\n", SlugFileName(topic))
	if extraInstructions != "" {
		fmt.Fprintf(&b, "\n%s\n", extraInstructions)
	}
	b.WriteString("\nStep by step:\n")
	b.WriteString("1. Search for an image about the topic\n")
	b.WriteString("2. Write a brief blog post with MDX frontmatter\n")
	b.WriteString("3. Save it using write_post with TWO parameters: file_name and content")

	return a.Run(ctx, b.String())
}

// Chat runs the loop on a raw message and returns the assistant text.
func (a *Agent) Chat(ctx context.Context, message string) (string, error) {
	result, err := a.Run(ctx, message)
	if err != nil {
		return "", err
	}
	return result.Output, nil
}

// SlugFileName derives the suggested post file name from a topic: lowercase,
// spaces to dashes, truncated to 30 characters, with the .mdx extension.
func SlugFileName(topic string) string {
	slug := strings.ReplaceAll(strings.ToLower(topic), " ", "-")
	if runes := []rune(slug); len(runes) > 30 {
		slug = string(runes[:30])
	}
	return slug + ".mdx"
}
