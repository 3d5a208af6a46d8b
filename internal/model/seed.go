package model

// SeedTerms is the packaged starter glossary. The postgres backend loads it on
// first run, and the assistant falls back to it for grounding when the Term
// Store is unreachable.
var SeedTerms = []Term{
	{
		ID:         "7b9f0a44-1c2d-4e5f-8a6b-0c1d2e3f4a5b",
		Term:       "ETV",
		Category:   CategoryAcronym,
		Definition: "Estimated Tax Value. The fair market value of an item which is reported to the IRS on your 1099-NEC form. You pay income tax on this amount.",
		Example:    "Be careful ordering that high ETV espresso machine; it will add to your taxable income.",
		Tags:       StringList{"tax", "finance"},
		Status:     StatusApproved,
	},
	{
		ID:         "2f6e1b53-9d0c-4b7a-9e2f-5a6b7c8d9e0f",
		Term:       "Unicorn",
		Category:   CategorySlang,
		Definition: "A highly coveted, high-value item that rarely appears in RFY (e.g., name-brand TVs, gaming laptops, high-end appliances).",
		Example:    "I finally caught a unicorn today: a 65-inch OLED TV!",
		Tags:       StringList{"rare", "high-value"},
		Status:     StatusApproved,
	},
	{
		ID:         "c4a8d2e1-3b5f-4c6d-8e9f-0a1b2c3d4e5f",
		Term:       "RFY",
		Category:   CategoryQueue,
		Definition: "Recommended For You. A personalized queue of items that Amazon's algorithm thinks you specifically might want to review based on past orders.",
		Example:    "My RFY was empty all morning, then populated with ghost items.",
		Tags:       StringList{"queues", "algorithm"},
		Status:     StatusApproved,
	},
	{
		ID:         "9e1f2a3b-4c5d-4e6f-8a9b-7c8d9e0f1a2b",
		Term:       "AFA",
		Category:   CategoryQueue,
		Definition: "Available For All. A queue visible to all Vine Voices, typically containing lower value items, books, or Sold by Amazon (SBA) items.",
		Tags:       StringList{"queues"},
		Status:     StatusApproved,
	},
	{
		ID:         "5d4c3b2a-1e0f-4a9b-8c7d-6e5f4a3b2c1d",
		Term:       "AI",
		Category:   CategoryQueue,
		Definition: "Additional Items. The main catch-all queue where the majority of Vine items appear (often tens of thousands). Visible to all voices.",
		Example:    "I spent an hour refreshing AI looking for $0 ETV skincare.",
		Tags:       StringList{"queues"},
		Status:     StatusApproved,
	},
	{
		ID:         "8a7b6c5d-4e3f-4a1b-9c0d-2e3f4a5b6c7d",
		Term:       "The Drop",
		Category:   CategorySlang,
		Definition: "The time of day when Amazon releases new items into the queues. This can happen in waves or continuously over several hours.",
		Example:    "The morning drop started around 3 AM PST.",
		Tags:       StringList{"timing"},
		Status:     StatusApproved,
	},
	{
		ID:         "3c2d1e0f-5a6b-4c8d-9e7f-8a9b0c1d2e3f",
		Term:       "0 ETV",
		Category:   CategorySlang,
		Definition: "Items with an Estimated Tax Value of $0.00. Typically includes food, beauty, health, and medical items. Highly competitive.",
		Example:    "I scored a ton of 0 ETV supplements today.",
		Tags:       StringList{"tax", "popular"},
		Status:     StatusApproved,
	},
	{
		ID:         "6f5e4d3c-2b1a-4f0e-8d9c-3b4a5c6d7e8f",
		Term:       "Gold Status",
		Category:   CategoryStatus,
		Definition: "The higher tier of Vine membership. Allows ordering of up to 8 items per day and items with any price value (no $100 limit). Requires 90% review rate.",
		Tags:       StringList{"tiers"},
		Status:     StatusApproved,
	},
	{
		ID:         "0d1e2f3a-6b7c-4d5e-9f8a-4c5d6e7f8a9b",
		Term:       "Silver Status",
		Category:   CategoryStatus,
		Definition: "The entry tier for Vine. Limited to 3 items per day and items valued under $100. New members start here.",
		Tags:       StringList{"tiers"},
		Status:     StatusApproved,
	},
	{
		ID:         "4b3a2c1d-7e8f-4b6a-8c5d-9e0f1a2b3c4d",
		Term:       "Vine Jail",
		Category:   CategorySlang,
		Definition: "A restricted state where a reviewer falls below required review percentages (usually 60% of recent orders). Access to RFY/AI is blocked until metrics improve.",
		Example:    "I need to catch up on reviews this weekend or I'm headed to Vine Jail.",
		Tags:       StringList{"trouble", "metrics"},
		Status:     StatusApproved,
	},
	{
		ID:         "d8c7b6a5-0f1e-4d3c-9b8a-5d6e7f8a9b0c",
		Term:       "FBA",
		Category:   CategoryAcronym,
		Definition: "Fulfilled By Amazon. Items stored in Amazon warehouses. These usually ship faster than third-party seller items.",
		Tags:       StringList{"shipping"},
		Status:     StatusApproved,
	},
	{
		ID:         "1a0b9c8d-3e4f-4a2b-8c6d-0f1e2d3c4b5a",
		Term:       "SBA",
		Category:   CategoryAcronym,
		Definition: "Sold By Amazon. Items where Amazon is the retailer, not a third-party seller. These often appear in the AFA queue.",
		Tags:       StringList{"seller"},
		Status:     StatusApproved,
	},
	{
		ID:         "e5f4a3b2-8c9d-4e7f-9a0b-6c7d8e9f0a1b",
		Term:       "Ghost Item",
		Category:   CategorySlang,
		Definition: "An item that appears in the list but gives an error (e.g., infinite spinner or red error box) when you try to request it, often because it is already out of stock.",
		Tags:       StringList{"errors"},
		Status:     StatusApproved,
	},
	{
		ID:         "b2c3d4e5-9f0a-4b8c-8d7e-1a2b3c4d5e6f",
		Term:       "6-Month Rule",
		Category:   CategoryGeneral,
		Definition: "The Terms of Service requirement stating that Vine Voices must keep possession of products for 6 months before transferring possession or disposing of them.",
		Tags:       StringList{"rules", "legal"},
		Status:     StatusApproved,
	},
	{
		ID:         "a9b8c7d6-5e4f-4a0b-9c1d-7e8f9a0b1c2d",
		Term:       "Vine CS",
		Category:   CategoryAcronym,
		Definition: "Vine Customer Support. A specialized support team separate from regular Amazon CS. They handle removals, order issues, and review glitches.",
		Example:    "I emailed Vine CS to remove that item that never arrived.",
		Tags:       StringList{"support"},
		Status:     StatusApproved,
	},
}
