package intelligence

import "github.com/alexanderramin/faqbot/internal/domain"

const (
	assistantName = "Dinesh Assistant"
	projectName   = "ConfigMaster"
)

var greetingVariants = []string{
	"Hey there! 👋 I'm " + assistantName + ", and I'm super excited to help you with the " +
		projectName + " project! Here's what I can assist you with:\n\n" +
		"🚀 Project features and capabilities\n" +
		"⚙️ Configuration management\n" +
		"🌍 Internationalization (i18n)\n" +
		"📝 Template system\n" +
		"✅ Validation framework\n" +
		"🧪 Testing and development\n\n" +
		"What would you like to explore today? I'm all ears! 😊",
	"Hi! I'm " + assistantName + ", your friendly guide to all things " + projectName + "! 🤗\n\n" +
		"I love helping with:\n" +
		"💫 Project features and cool capabilities\n" +
		"🔧 Configuration setup and management\n" +
		"🗣️ Internationalization (i18n)\n" +
		"🎨 Template system\n" +
		"🎯 Validation framework\n" +
		"🔬 Testing and development\n\n" +
		"What can I help you discover today?",
	"Welcome! 🌟 " + assistantName + " here, ready to make your " + projectName + " journey awesome!\n\n" +
		"I'm your go-to expert for:\n" +
		"✨ Project features and capabilities\n" +
		"🛠️ Configuration management\n" +
		"🌐 Internationalization (i18n)\n" +
		"📋 Template system\n" +
		"✅ Validation framework\n" +
		"🧪 Testing and development\n\n" +
		"Got questions? I've got answers! Let's make something amazing together! 💪",
}

// GreetingText is the fixed reply to a bare greeting.
const GreetingText = "Hello! 👋 I'm here to help with project-related questions and development tasks.\n\n" +
	"You can ask me about:\n" +
	"• Project features and capabilities\n" +
	"• Implementation details\n" +
	"• Technical problems\n\n" +
	"What would you like to know?"

var greetingFollowUps = []string{
	"What features does this project have?",
	"How do I run tests?",
	"What languages are supported?",
}

const identityText = "I'm " + assistantName + ", your friendly AI companion! I specialize in helping with the " +
	projectName + " project: its features, configuration, i18n, templates, validation and testing. " +
	"I answer from a built-in knowledge base and can call on a language model for harder questions."

const capabilitiesText = "Let me show you exactly what I can do to help you! 🚀\n\n" +
	"1. I'm Your Project Guide 🎯\n" +
	"   • Help you understand the codebase\n" +
	"   • Guide you through features\n" +
	"   • Fix problems and errors\n" +
	"   • Share best practices\n\n" +
	"2. Development Support 💻\n" +
	"   • Code understanding\n" +
	"   • Testing and quality\n" +
	"   • Best practices\n" +
	"   • Problem-solving\n\n" +
	"3. Documentation Help 📖\n" +
	"   • Project structure\n" +
	"   • Implementation guides\n" +
	"   • Configuration info\n" +
	"   • Usage examples\n\n" +
	"Just ask specific questions like:\n" +
	"• \"What features does this project have?\"\n" +
	"• \"How do I implement [specific feature]?\"\n" +
	"• \"Help me understand [concept]\"\n" +
	"• \"Can you explain [specific part]?\"\n\n" +
	"I'll provide focused, relevant answers without going off-topic."

var capabilityFollowUps = []string{
	"Would you like to know about specific features?",
	"Need help with implementation details?",
	"Want to understand the project structure?",
}

// FallbackPhrase appears in every fallback text.
const FallbackPhrase = "rephras"

var fallbackTexts = []string{
	"Hmm, I'm not entirely sure I caught that right. 🤔 Mind rephrasing? " +
		"I'd love to help - you can ask me about project features, configuration, " +
		"i18n, templates, validation, or testing!",
	"I want to make sure I give you the best answer, but I'm a bit unsure about " +
		"that one. 😅 Could you try rephrasing it? I'm great with topics " +
		"like project features, configuration, i18n, templates, and more!",
	"I feel like we're almost there, but I want to understand your question better! " +
		"💭 Can you rephrase that? I'm here to help with all sorts of things like " +
		"project features, configuration, and more!",
}

const offlineText = "I'm running in offline mode right now, so I can't reach my AI backend for that kind of request. 📡\n\n" +
	"I can still answer from my built-in knowledge about project features, configuration, " +
	"i18n, templates, validation and testing. Try asking a more specific question!"

const genericErrorText = "I can help you fix that! To point you in the right direction, please share:\n\n" +
	"1. The exact error message or traceback\n" +
	"2. What you tried when it happened\n" +
	"3. The code that triggers it\n\n" +
	"With those details I can suggest a focused fix."

var genericErrorFollowUps = []string{
	"Can you paste the full traceback?",
	"Which command were you running?",
}

// errorFamily is one canned remediation, matched by substring.
type errorFamily struct {
	family     domain.ErrorFamily
	indicators []string
	diagnosis  string
	solution   string
	prevention []string
	example    string
}

// errorFamilies is ordered; the first family with a matching indicator wins.
var errorFamilies = []errorFamily{
	{
		family:     domain.ErrorRuntime,
		indicators: []string{"runtime", "error occurred", "exception"},
		diagnosis:  "A runtime error: the code parsed fine but failed while executing.",
		solution:   "Read the last frame of the traceback, then add error handling and input validation around the failing call.",
		prevention: []string{"Validate inputs at the boundary", "Wrap external calls in try/except", "Write tests for edge cases"},
		example:    "try:\n    result = process_data()\nexcept ValueError:\n    handle_error()",
	},
	{
		family:     domain.ErrorImport,
		indicators: []string{"import", "modulenotfound", "no module"},
		diagnosis:  "An import error: Python cannot find the module or name you asked for.",
		solution:   "Activate the project's virtual environment and run pip install -e \".[dev]\", then check the import path spelling.",
		prevention: []string{"Always work inside the virtual environment", "Pin dependencies in pyproject.toml", "Prefer absolute imports"},
		example:    "python -m venv .venv\nsource .venv/bin/activate\npip install -e \".[dev]\"",
	},
	{
		family:     domain.ErrorSyntax,
		indicators: []string{"syntax", "indentation", "invalid syntax", "parsing"},
		diagnosis:  "A syntax error: the file could not be parsed.",
		solution:   "Go to the line reported in the error and check for missing colons, brackets or inconsistent indentation.",
		prevention: []string{"Run black before committing", "Enable a linter in your editor", "Keep functions short"},
		example:    "black src/ tests/\nflake8 src/",
	},
	{
		family:     domain.ErrorType,
		indicators: []string{"typeerror", "type error", "type mismatch", "wrong type"},
		diagnosis:  "A type error: a value of the wrong type reached an operation.",
		solution:   "Check the types of the arguments at the failing line and convert or validate them before use.",
		prevention: []string{"Add type hints", "Run mypy in CI", "Validate config values on load"},
		example:    "def process(items: list[str]) -> dict[str, int]:\n    return {item: len(item) for item in items}",
	},
	{
		family:     domain.ErrorValue,
		indicators: []string{"valueerror", "value error", "invalid value", "invalid literal"},
		diagnosis:  "A value error: the type was right but the value was not acceptable.",
		solution:   "Print the offending value and add a range or pattern validator for it.",
		prevention: []string{"Use the validation framework's range validators", "Fail fast with clear messages", "Cover boundaries in tests"},
		example:    "validator = RangeValidator(min_value=0, max_value=100)\nvalidator.validate(config.timeout)",
	},
}

var errorFollowUps = []string{
	"Would you like to see a working example?",
	"Should I explain the solution in more detail?",
	"Would you like to learn about prevention?",
}

const (
	helpIntroLine   = "I'm here to help you succeed! Let me show you what I can do."
	moreDetailsLine = "\nWould you like more specific details about this?"
)

var empathyLines = []string{
	"I understand how frustrating these errors can be.",
	"Don't worry, we'll solve this together.",
	"That's a tricky issue, but we can fix it.",
}

var learningLines = []string{
	"Learning new technologies can be challenging, but I'm here to help.",
	"Take your time. We'll go through this step by step.",
	"That's a great topic to learn about. Let's explore it together.",
}

var farewellFollowUps = []string{
	"Is there anything else you'd like to know?",
	"Feel free to ask if you have more questions!",
	"Don't hesitate to reach out if you need more help.",
}
