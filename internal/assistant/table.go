package assistant

// DefaultEntries is the built-in canned-answer table. Order matters: both
// match passes iterate in declaration order and the first hit wins.
func DefaultEntries() []Entry {
	return []Entry{
		{
			Topic:    "Consumer Rights",
			Question: "what are my consumer rights",
			Keywords: []string{"consumer rights"},
			Answer: `Consumer rights are fundamental protections that ensure fair treatment when purchasing goods and services. Key rights include:

1. **Right to Safety**: Products should not harm you or your family
2. **Right to Information**: You must receive accurate details about products, prices, and terms
3. **Right to Choose**: You have the freedom to select from various products at competitive prices
4. **Right to be Heard**: You can file complaints and expect them to be addressed
5. **Right to Redress**: You're entitled to compensation for defective products or poor service

If you receive a defective product, you can return it within the warranty period. For unfair trade practices, you can file a complaint with consumer protection authorities. Always keep receipts and documentation.`,
		},
		{
			Topic:    "Tenant Rights",
			Question: "what are my rights as a tenant",
			Keywords: []string{"tenant rights"},
			Answer: `As a tenant, you have several important rights:

1. **Right to Habitable Living**: Your landlord must provide a safe, clean, and livable property
2. **Right to Privacy**: Landlords cannot enter without proper notice (usually 24-48 hours)
3. **Right to Security Deposit Protection**: Your deposit should be returned (minus damages) when you move out
4. **Right to Fair Treatment**: Protection against discrimination based on race, religion, gender, etc.
5. **Right to Repairs**: Landlords must fix essential issues like plumbing, heating, and safety hazards

If your landlord violates these rights, document everything and contact local tenant rights organizations or housing authorities for assistance.`,
		},
		{
			Topic:    "Cyberbullying",
			Question: "what is cyberbullying",
			Keywords: []string{"cyberbullying"},
			Answer: `Cyberbullying is the use of digital technology (social media, messaging, email) to harass, threaten, or humiliate someone. It includes:

- Sending threatening or abusive messages
- Spreading false rumors online
- Sharing embarrassing photos or videos without consent
- Creating fake profiles to impersonate someone
- Excluding someone from online groups intentionally

**What you can do:**
1. Don't respond to the bully
2. Save all evidence (screenshots, messages)
3. Block the person on all platforms
4. Report to the platform (social media sites have reporting features)
5. Tell a trusted adult or authority figure
6. Contact law enforcement if threats are serious

Many countries have laws against cyberbullying, and it can result in criminal charges. Remember: you're not alone, and help is available.`,
		},
		{
			Topic:    "Employee Rights",
			Question: "what are my employee rights",
			Keywords: []string{"employee rights"},
			Answer: `As an employee, you have fundamental rights including:

1. **Right to Fair Wages**: Minimum wage and overtime pay as per labor laws
2. **Right to Safe Workplace**: Your employer must provide a safe working environment
3. **Right to Equal Opportunity**: Protection against discrimination (age, gender, race, religion, disability)
4. **Right to Privacy**: Personal information should be kept confidential
5. **Right to Organize**: Freedom to join unions and engage in collective bargaining
6. **Right to Leave**: Entitlement to sick leave, vacation, and maternity/paternity leave as per law

If your rights are violated, document incidents, report to HR, and contact labor authorities or employment lawyers for assistance.`,
		},
		{
			Topic:    "Contracts",
			Question: "what is a contract",
			Keywords: []string{"contract"},
			Answer: `A contract is a legally binding agreement between two or more parties. For it to be valid, it needs:

1. **Offer**: One party proposes terms
2. **Acceptance**: The other party agrees to those terms
3. **Consideration**: Something of value is exchanged (money, services, goods)
4. **Legal Capacity**: Both parties must be legally able to enter contracts (adults, mentally competent)
5. **Legal Purpose**: The agreement must be for a lawful purpose

**Important points:**
- Written contracts are easier to enforce, but verbal contracts can also be valid
- Read contracts carefully before signing
- You can't be forced to sign under duress or threat
- If a contract is unfair or illegal, it may not be enforceable

Always keep copies of contracts and consult a lawyer for complex agreements.`,
		},
		{
			Topic:    "Intellectual Property",
			Question: "what is intellectual property",
			Keywords: []string{"intellectual property"},
			Answer: `Intellectual Property (IP) refers to creations of the mind that have legal protection:

1. **Copyright**: Protects creative works (books, music, art, software) - lasts for author's lifetime + 50-70 years
2. **Trademark**: Protects brand names, logos, slogans (e.g., company logos)
3. **Patent**: Protects inventions and processes (usually 20 years)
4. **Trade Secret**: Protects confidential business information (recipes, formulas)

**Your rights:**
- You own the IP you create
- Others cannot use it without permission
- You can license or sell your IP
- You can take legal action if someone infringes your IP

**To protect your IP:**
- Register copyrights, trademarks, or patents
- Use proper notices (©, ™, ®)
- Keep records of creation dates
- Consider professional legal advice for valuable IP`,
		},
	}
}
