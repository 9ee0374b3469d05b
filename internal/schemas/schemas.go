package schemas

// Embedded schemas for the two LLM-generated intermediates. Kept as string
// constants so validation needs no filesystem access at runtime.

const resumeIntermediateSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "ResumeIntermediate",
  "type": "object",
  "required": ["summary", "skills", "experience"],
  "properties": {
    "summary": {"type": "string", "minLength": 1},
    "skills": {
      "type": "array",
      "items": {"type": "string"}
    },
    "experience": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["company", "role", "start"],
        "properties": {
          "company": {"type": "string", "minLength": 1},
          "role": {"type": "string", "minLength": 1},
          "start": {"type": "string", "minLength": 1},
          "end": {"type": "string"},
          "location": {"type": "string"},
          "bullets": {"type": "array", "items": {"type": "string"}}
        }
      }
    },
    "projects": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "description": {"type": "string"}
        }
      }
    },
    "education": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["institution", "degree"],
        "properties": {
          "institution": {"type": "string"},
          "degree": {"type": "string"},
          "year": {"type": "string"}
        }
      }
    }
  }
}`

const coverIntermediateSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "CoverIntermediate",
  "type": "object",
  "required": ["greeting", "opening", "body", "closing", "signature"],
  "properties": {
    "greeting": {"type": "string", "minLength": 1},
    "opening": {"type": "string", "minLength": 1},
    "body": {
      "type": "array",
      "minItems": 1,
      "items": {"type": "string"}
    },
    "closing": {"type": "string", "minLength": 1},
    "signature": {"type": "string", "minLength": 1},
    "company_type": {"type": "string", "enum": ["agency", "enterprise"]}
  }
}`
