package prompt

// MemoSections returns the eleven required memorandum sections in order.
func MemoSections() []Section {
	return []Section{
		{
			Title: "Executive Summary",
			Requirements: []string{
				"Include deal terms and analysis date",
				"Provide a concise summary of the company's offering",
				`Explain why this investment could be attractive for the fund. Be specific, highlighting the "why now" and "why this team in this space." Keep this part concise with the main specific points.`,
			},
		},
		{
			Title: "Market Opportunity and Sizing",
			Requirements: []string{
				`Explain the current unattended area or problems companies face. Mention any tailwinds making this space more attractive at this moment. Keep the "why now" reasons to 2-3 points.`,
				"Provide a detailed market sizing calculation using as much data as given in the context. Include Total Addressable Market (TAM) and the CAGR or expected growth with reason, making sure you detail what market you are referring to.",
				"For each number included (like market size in billions or growth rate), provide details. Also provide hyperlink to the URL of sources if available.",
			},
		},
		{
			Title: "Competitive Landscape",
			Requirements: []string{
				"Analyze competitors, providing descriptions of what they do, any traction, and total funding when data is available. If not available do not make it up, stick with context.",
				"Provide a detailed comparison of strengths and weaknesses of each competitor.",
			},
		},
		{
			Title: "Product/Service Description",
			Requirements: []string{
				"Offer a comprehensive description of the product or services. This section should be very detailed.",
				"Mention what is unique about their approach with good detail.",
				"Explain why it's a good fit for the market.",
				"Provide an in-depth analysis of the AI stack, including AI tech strategy and differentiation; be detailed if context is provided.",
				"Include a detailed section on the product roadmap, outlining future products and long-term vision.",
				"Include a forward-looking section on what will become the company's competitive advantages, mixing provided information with reasoning about what those advantages can become.",
			},
		},
		{
			Title: "Business Model",
			Requirements: []string{
				"Describe the company's revenue streams and pricing strategy.",
				"Analyze the scalability and sustainability of the business model.",
			},
		},
		{
			Title: "Team",
			Requirements: []string{
				`Use LinkedIn data if available, usually under "Founder Information from LinkedIn."`,
				"Must include hyperlinks to the founders' LinkedIn profiles if provided.",
				"Provide detailed backgrounds and relevant experience of key team members.",
				"Provide background on how they came together and entered this space if context is given.",
			},
		},
		{
			Title: "Go-to-Market Strategy",
			Requirements: []string{
				"Offer a comprehensive description of the company's go-to-market strategy.",
				"Define the Ideal Customer Profile (ICP).",
				"Describe current traction or pilots, if applicable.",
				"Outline the strategy for user acquisition and growth.",
				"Mention milestones the company has for the next round if data is available.",
			},
		},
		{
			Title: "Main Risks",
			Requirements: []string{
				"List and analyze the main 4-6 risks that could lead to the startup's failure, being very specific to the business.",
			},
		},
		{
			Title: "What Can Go Massively Right",
			Requirements: []string{
				"Provide visionary thinking about the most optimistic scenario for the company's future while keeping realistic expectations. Focus on long-term impact and success, highlighting critical assumptions or market conditions necessary for high success.",
			},
		},
		{
			Title: "Tech Evaluation and Scores",
			Requirements: []string{
				"On a scale of 1 to 10, rate their idea, pitch, and approach, considering factors such as technological differentiation, competition, go-to-market strategy, and traction. Provide reasons for each rating.",
				"Critically analyze and evaluate the technical aspects of AI startup pitches. Identify and critique areas where the pitch may fall short, highlight potential risks, and address challenges in implementation and achievement.",
				"Focus on technical feasibility, accuracy, integration, scalability, and other critical areas relevant to AI technology.",
				"Provide detailed critiques of specific technical areas that may be more challenging than initially expected.",
				"Highlight any technical assumptions that may not hold up in real-world scenarios.",
				"Discuss potential pitfalls in proposed AI models, algorithms, data handling, or infrastructure.",
				"Avoid generic comments; focus on providing deep technical insights with clear explanations and justifications.",
			},
		},
		{
			Title: "Follow-up Questions",
			Requirements: []string{
				"Generate 4-7 specific follow-up questions to ask the founding team. These questions should address areas where we lack sufficient information or highlight critical risks that could impact the company's success or failure. The questions should be tailored to the specific business, avoiding generic queries, and should help elevate the discussion by diving deeper into the key topics we already have insights on.",
			},
		},
	}
}
