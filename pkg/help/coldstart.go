package help

const ColdstartYAML = `# schemagen Quick Start

prompt_modes:
  direct: "Full structured content plus schema type reference (default)"
  analyzed: "Pre-classified content object from an external analyzer (--analyzed file.json)"

commands:
  basic_generate: |
    schemagen generate --urls "https://example.com"

  multiple_urls: |
    schemagen generate --urls "https://example.com,https://example.com/about" --workers 4

  with_type_hint: |
    schemagen generate --urls "https://example.com/services" --type-hint Service

  force_regenerate: |
    schemagen generate --urls "https://example.com" --force

  preview_structure: |
    schemagen structure --url "https://example.com" --text

  check_provider: |
    schemagen test-connection

  list_cached: |
    schemagen cache list

  show_schema: |
    schemagen cache show 3
    schemagen cache show https://example.com/about

  invalidate: |
    schemagen cache invalidate 3
    schemagen cache invalidate --all

settings_file:
  - "settings.yaml holds provider, API keys, model, site and business facts"
  - "provider: openai (default)"
  - "openai_api_key: sk-..."
  - "openai_model: gpt-4o-mini"
  - "settings_version: bump to invalidate every cached schema at once"
  - "business: nested block (name, type, street, locality, phone, ...)"

caching:
  - "Raw HTML cached on disk with a TTL (--max-age, --force-fetch to bypass)"
  - "Generated schemas cached in SQLite by content fingerprint"
  - "Unchanged page + unchanged settings = instant cache hit, no API call"
  - "Use 'schemagen cache history <id>' to see past provider calls"

type_hints:
  - "auto (default), Article, WebPage, Service, LocalBusiness, FAQPage"
  - "Product, Organization, Person, Event, HowTo"
  - "Hints are advisory; unknown values fall back to auto"

error_behavior:
  - "Malformed URLs: fail fast before fetching"
  - "missing_key: no API key configured, nothing sent over the wire"
  - "rate_limited: provider returned 429, retried after the cool-down"
  - "Exit codes: 0=success, 1=partial failure, 2=complete failure"
`
