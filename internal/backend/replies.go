package backend

const (
	videoSummaryReply = "**Video Analysis Complete!**\n\n" +
		"**Main Topic:**\nThis appears to be an educational video about technology and innovation.\n\n" +
		"**Key Points:**\n• Introduction to core concepts\n• Practical applications and examples\n• Future implications and trends\n\n" +
		"**What would you like to do next?**\n• Ask me questions about the content\n• Generate a quiz to test your understanding\n• Get clarification on any confusing parts"

	needVideoReply = "Hi! I'm your YouTube Assistant\n\n" +
		"I can help you analyze YouTube videos by providing:\n• Comprehensive summaries\n• Answers to your questions\n• Interactive quizzes\n\n" +
		"**To get started, simply paste a YouTube URL here!**\n\nExample: `https://www.youtube.com/watch?v=VIDEO_ID`"

	stockPriceReply = "**Apple Inc. (AAPL)**\n\n" +
		"Current Price: $185.25 USD\nPrevious Close: $183.50\nChange: +1.75 (+0.95%)\n\n" +
		"**Market Status:** Market is open\n**Last Updated:** Just now"

	financeHelpReply = "**Finance Assistant**\n\nI can help you with:\n" +
		"• Stock prices and quotes - \"What's the price of AAPL?\"\n" +
		"• Cryptocurrency prices - \"Bitcoin price\"\n" +
		"• Portfolio analysis - \"Calculate portfolio: AAPL:100,GOOGL:50\"\n\n" +
		"What financial information would you like to know?"

	techNewsReply = "**Latest Tech News**\n\n" +
		"• **AI Breakthrough: New Language Model Achieves Human-Level Performance**\n" +
		"• **Tech Giants Report Strong Q4 Earnings**\n" +
		"• **Quantum Computing Milestone Reached**"

	newsHelpReply = "**News Assistant**\n\nI can help you with:\n" +
		"• Breaking news - \"What's the latest breaking news?\"\n" +
		"• Technology news - \"Show me tech news\"\n" +
		"• Topic search - \"News about climate change\"\n\n" +
		"What news would you like to see?"

	musicGenerationReply = "**Music Generation Initiated**\n\n" +
		"I would create a custom music piece based on your request:\n\n**Your Prompt:** %q\n\n" +
		"**Generated Music Details:**\n• Genre: Based on your specifications\n• Duration: 2-3 minutes\n• Format: High-quality MP3"

	musicHelpReply = "**Music Generator**\n\nI can help you create custom music:\n" +
		"• Generate music - \"Generate a relaxing piano piece\"\n" +
		"• Various genres - Classical, jazz, electronic, pop, rock, ambient\n\n" +
		"What kind of music would you like me to create?"

	dataReadyReply = "**Data Analysis Ready**\n\n" +
		"I can help you analyze data! Please provide:\n• CSV data to analyze\n• Specific questions about your data\n\n" +
		"What data analysis do you need help with?"

	dataHelpReply = "**Data Analysis Assistant**\n\nI can help you with:\n" +
		"• CSV data analysis - Upload or paste CSV data\n• Statistical summaries - Mean, median, standard deviation\n\n" +
		"What data would you like me to analyze?"

	itineraryReply = "**5-Day Tokyo Itinerary**\n\n" +
		"**Day 1: Arrival & Shibuya**\n• Explore Shibuya Crossing and Hachiko Statue\n\n" +
		"**Day 2: Traditional Tokyo**\n• Visit Senso-ji Temple in Asakusa\n\n" +
		"**Total Estimated Cost: $1,000 - $2,000**"

	needDestinationReply = "**Travel Planning Assistant**\n\n" +
		"I'd love to help you plan a trip! Please tell me:\n• Where would you like to go?\n• How many days would you like to travel?\n\n" +
		"For example: 'Plan a 5-day trip to Tokyo'"
)
