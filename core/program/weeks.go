package program

var weeks = [TotalWeeks]Week{
	{
		Number:         1,
		Theme:          "What is Yoga?",
		CoreSutras:     "I.1–I.2",
		KeyIdea:        "Yoga as cessation of mental fluctuations.",
		WeeklyPractice: "Contemplate yoga as stilling the mind; 1–3 times per day pause for 1 minute to notice and label what the mind is doing; brief evening note on the dominant mental pattern.",
	},
	{
		Number:         2,
		Theme:          "Witnessing the Mind",
		CoreSutras:     "I.3–I.4",
		KeyIdea:        "You are the witness of thoughts, not the thoughts themselves.",
		WeeklyPractice: "Daily 5–10 minute sit observing thoughts as events; use phrases like \"thinking, remembering, judging\"; journal one situation where you remembered or forgot to be the observer.",
	},
	{
		Number:         3,
		Theme:          "Five Types of Thought",
		CoreSutras:     "I.5–I.11",
		KeyIdea:        "Thoughts come in clear, distorted, imagined, sleep, and memory forms, and can be painful or painless.",
		WeeklyPractice: "Choose one recurring thought pattern and classify it (pramāṇa, viparyaya, vikalpa, nidrā, smṛti); keep a simple \"trigger / thought type\" log; review which type dominates by week's end.",
	},
	{
		Number:         4,
		Theme:          "Practice & Dispassion",
		CoreSutras:     "I.12–I.16",
		KeyIdea:        "Steady practice and non-attachment are twin supports of yoga.",
		WeeklyPractice: "Commit to one tiny daily practice (e.g., 5-minute sit); when impulses arise, pause for 10 breaths and watch them; note experiences of letting go vs getting pulled in.",
	},
	{
		Number:         5,
		Theme:          "Higher Orientation",
		CoreSutras:     "I.23–I.29; II.1–II.2",
		KeyIdea:        "Orienting the mind toward a higher ideal or value.",
		WeeklyPractice: "Define your highest value (truth, clarity, compassion, etc.); each morning state it aloud; at night record one action aligned with it and one that wasn't; use the value as tie-breaker in decisions.",
	},
	{
		Number:         6,
		Theme:          "Yoga as Inner Clean-Up (Kriya Yoga)",
		CoreSutras:     "II.1–II.2",
		KeyIdea:        "Self-discipline, study, and surrender as tools to reduce mental noise.",
		WeeklyPractice: "Pick one small austerity (e.g., no phone in bed, no caffeine after 14:00); watch and journal resistance and cravings; end each day noting one way you accepted reality instead of fighting it.",
	},
	{
		Number:         7,
		Theme:          "The Kleshas – Roots of Suffering",
		CoreSutras:     "II.3–II.9",
		KeyIdea:        "Ignorance, ego-fixation, craving, aversion, and clinging as deep causes of suffering.",
		WeeklyPractice: "Each day focus on one klesha and note where it shows up; each evening pick one moment of suffering and identify the main klesha; write a brief alternative response you might try next time.",
	},
	{
		Number:         8,
		Theme:          "Ignorance & Mis-Identification",
		CoreSutras:     "II.5",
		KeyIdea:        "Mistaking the changing/painful for permanent/pleasant.",
		WeeklyPractice: "Identify one behavior that feels good now but hurts later; before doing it, label it as \"pleasant-now/painful-later\"; after acting or abstaining, journal how accurate that label felt.",
	},
	{
		Number:         9,
		Theme:          "Ego & Roles",
		CoreSutras:     "II.6",
		KeyIdea:        "Confusing the seer with roles and self-images.",
		WeeklyPractice: "List 3–5 identities you cling to; choose one situation to consciously loosen a role and act more freely; in meditation repeat a phrase like \"Roles come and go; awareness remains\" and note the felt sense.",
	},
	{
		Number:         10,
		Theme:          "Craving & Aversion",
		CoreSutras:     "II.7–II.8",
		KeyIdea:        "Chasing pleasant and avoiding unpleasant binds the mind.",
		WeeklyPractice: "Make lists of what you strongly crave and avoid; do one small \"opposite action\" for each (do something small you usually avoid, skip something you usually crave once); record internal reactions.",
	},
	{
		Number:         11,
		Theme:          "Fear & Clinging",
		CoreSutras:     "II.9",
		KeyIdea:        "Deep clinging to life and the familiar creates subtle fear.",
		WeeklyPractice: "Introduce one safe micro-change in routine each day (route, seat, order); observe discomfort and journal it; in meditation, briefly visualize releasing a familiar pattern and resting in not-knowing.",
	},
	{
		Number:         12,
		Theme:          "Obstacles on the Path",
		CoreSutras:     "I.30–I.32",
		KeyIdea:        "Illness, dullness, doubt, laziness, carelessness, etc. obstruct practice.",
		WeeklyPractice: "Identify your top 2–3 obstacles; pick the main one and design a tiny counter-move (e.g., minimum 2-minute practice, reading one sutra); track daily whether you applied the counter-move.",
	},
	{
		Number:         13,
		Theme:          "Antidotes to Disturbance",
		CoreSutras:     "I.33–I.39",
		KeyIdea:        "Friendliness, compassion, joy, equanimity, and support practices steady the mind.",
		WeeklyPractice: "Choose one of the four attitudes (friendliness, compassion, joy, equanimity) as your theme; deliberately generate it toward someone daily; use brief breath awareness whenever agitation spikes.",
	},
	{
		Number:         14,
		Theme:          "Ahimsa – Non-Harming (Understanding)",
		CoreSutras:     "II.30",
		KeyIdea:        "Non-violence in thought, word, and deed.",
		WeeklyPractice: "Begin the day asking how non-harming could shape schedule, diet, speech, self-talk; keep a tally of subtle aggression (impatience, harsh self-talk, gossip); rewrite one episode each night in ahimsa form.",
	},
	{
		Number:         15,
		Theme:          "Ahimsa – Non-Harming (Application)",
		CoreSutras:     "II.35",
		KeyIdea:        "Non-harming naturally generates peace around you.",
		WeeklyPractice: "Choose a relationship you want to soften; set one concrete non-harming experiment (no sarcasm, one kind message, etc.); observe and journal changes in your inner state and the relationship dynamics.",
	},
	{
		Number:         16,
		Theme:          "Satya – Truthfulness (Understanding)",
		CoreSutras:     "II.30",
		KeyIdea:        "Aligning speech, thought, and action with reality.",
		WeeklyPractice: "Notice where you exaggerate, omit, or pretend; for one week avoid \"white lies\" about your state and avoid exaggerations; when you slip, note what you feared would happen if you told the fuller truth.",
	},
	{
		Number:         17,
		Theme:          "Satya – Truthfulness (Application)",
		CoreSutras:     "II.36",
		KeyIdea:        "Truth aligned with non-harm has power.",
		WeeklyPractice: "Choose one conversation where honesty is missing; script it on paper with both truth and kindness; either have the conversation or role-play it; debrief in writing how it felt and what you learned.",
	},
	{
		Number:         18,
		Theme:          "Asteya – Non-Stealing (Understanding)",
		CoreSutras:     "II.30",
		KeyIdea:        "Not taking what is not freely given, including time, attention, and credit.",
		WeeklyPractice: "List subtle stealing habits (interrupting, pirated content, emotional dumping); for one day act as if everyone's time and attention are precious; note shifts in your sense of respect and presence.",
	},
	{
		Number:         19,
		Theme:          "Asteya – Non-Stealing (Application)",
		CoreSutras:     "II.37",
		KeyIdea:        "Letting go of stealing grows inner wealth.",
		WeeklyPractice: "Pick one area (piracy, emotional labor, etc.) to stop \"taking\" from this week; replace it with giving or creating (buy, thank, contribute); journal effects on your sense of lack vs abundance.",
	},
	{
		Number:         20,
		Theme:          "Brahmacharya – Wise Use of Energy (Understanding)",
		CoreSutras:     "II.30",
		KeyIdea:        "Conserving and directing life-force skillfully, not just about sex.",
		WeeklyPractice: "Map your main energy leaks (screens, overwork, substances); create a \"prāṇa budget\" by halving one drain and reallocating that time to a nourishing practice; track changes in energy and clarity.",
	},
	{
		Number:         21,
		Theme:          "Brahmacharya – Wise Use of Energy (Application)",
		CoreSutras:     "II.38",
		KeyIdea:        "Conserved energy supports clarity and steadiness.",
		WeeklyPractice: "Choose a form of stimulation (porn, binge shows, energy drinks) and practice delayed gratification: when urge hits, breathe 10–20 counts, ask what you really want underneath, then decide; journal discoveries.",
	},
	{
		Number:         22,
		Theme:          "Aparigraha – Non-Grasping (Understanding)",
		CoreSutras:     "II.30",
		KeyIdea:        "Not hoarding or clinging to possessions, control, or experiences.",
		WeeklyPractice: "List what you cling to (objects, roles, routines); each day let go of one small thing (object, tab, note, unnecessary obligation) while mentally affirming \"I have enough\"; note anxiety or relief.",
	},
	{
		Number:         23,
		Theme:          "Aparigraha – Non-Grasping (Application)",
		CoreSutras:     "II.39",
		KeyIdea:        "Non-grasping brings insight into what is truly needed.",
		WeeklyPractice: "Declare a \"no new acquisitions week\" in one area (shopping, apps, projects); deepen what you already have instead; write at week's end about real needs vs socially conditioned wants.",
	},
	{
		Number:         24,
		Theme:          "Śauca – Purity (Body & Environment)",
		CoreSutras:     "II.32",
		KeyIdea:        "Outer cleanliness and order support inner clarity.",
		WeeklyPractice: "Choose one small space (desk, nightstand, phone home screen) to simplify; remove what doesn't support clarity; make one gentle dietary clean-up (add one whole food, remove one junk item); observe mental effects.",
	},
	{
		Number:         25,
		Theme:          "Śauca – Purity (Mind)",
		CoreSutras:     "II.40–II.41",
		KeyIdea:        "Reducing mental pollution makes the mind more contemplative.",
		WeeklyPractice: "Identify your top mental pollutants (certain news, subs, feeds); pause or strictly limit at least one; replace with reading or practice aligned with Yoga; track mood and attention changes through the week.",
	},
	{
		Number:         26,
		Theme:          "Santoṣa – Contentment (Understanding)",
		CoreSutras:     "II.32",
		KeyIdea:        "Quiet happiness with what is, without passivity.",
		WeeklyPractice: "Write down the conditions you think must be met before you can relax; each night list three \"enough\" moments from the day and one thing you're restless about; watch how these lists evolve.",
	},
	{
		Number:         27,
		Theme:          "Santoṣa – Contentment (Application)",
		CoreSutras:     "II.42",
		KeyIdea:        "Contentment is a direct source of happiness.",
		WeeklyPractice: "Whenever you catch an \"I'll be happy when…\" thought, pause and name something you can appreciate right now; tally how often you remember; journal one clear experience of contentment without outer change.",
	},
	{
		Number:         28,
		Theme:          "Tapas – Disciplined Effort (Understanding)",
		CoreSutras:     "II.1; II.43",
		KeyIdea:        "Heat and effort that burn impurities and build strength.",
		WeeklyPractice: "Choose one tiny physical tapas (cold shower finish, daily walk, brief exercises) and do it daily; journal resistance, excuses, and the feeling after doing it; notice emerging sense of inner strength.",
	},
	{
		Number:         29,
		Theme:          "Tapas – Disciplined Effort (Application)",
		CoreSutras:     "II.43",
		KeyIdea:        "Sustainable effort transforms the body-mind instrument.",
		WeeklyPractice: "Design a realistic daily routine (e.g., 10 min asana, 5 min breath, 5 min sit); test it every day and adjust until it's challenging but doable; record your final version as a \"practice contract.\"",
	},
	{
		Number:         30,
		Theme:          "Svādhyāya – Study of Texts",
		CoreSutras:     "II.44",
		KeyIdea:        "Studying wisdom texts as a mirror for the mind.",
		WeeklyPractice: "Pick a primary text (Yoga Sūtras, Gita, etc.); each day read a small portion and write three bullets: what it says, how it applies to your day, and one question it raises; review notes once this week.",
	},
	{
		Number:         31,
		Theme:          "Svādhyāya – Self-Inquiry",
		CoreSutras:     "II.44",
		KeyIdea:        "Examining your own patterns and beliefs.",
		WeeklyPractice: "Choose one recurring belief about yourself (e.g., \"I never finish things\"); do a daily 5-minute inquiry sit bringing up a situation where it arises and asking what else might be true; journal alternative views.",
	},
	{
		Number:         32,
		Theme:          "Ishvara-Praṇidhāna – Surrender (Understanding)",
		CoreSutras:     "II.1; II.45",
		KeyIdea:        "Letting go of the illusion of total control.",
		WeeklyPractice: "Define what \"larger than me\" means for you (life, reality, dharma, truth); each morning affirm doing your best while releasing what you can't control; each night list 2–3 events you consciously release.",
	},
	{
		Number:         33,
		Theme:          "Ishvara-Praṇidhāna – Surrender (Application)",
		CoreSutras:     "II.45",
		KeyIdea:        "Surrender supports depth in meditation and life.",
		WeeklyPractice: "Identify where your control habit is strongest; experiment with relaxing your grip by 10–20% in that area; when anxiety rises, place a hand on your heart and repeat \"I'm responsible for actions, not outcomes,\" then journal.",
	},
	{
		Number:         34,
		Theme:          "Asana – Stable & Comfortable Posture",
		CoreSutras:     "II.46",
		KeyIdea:        "Postures should be steady and easeful.",
		WeeklyPractice: "Create a simple 10–15 minute asana mini-sequence; practice daily with the intention of balance rather than performance; after each session sit 2 minutes simply feeling bodily sensations.",
	},
	{
		Number:         35,
		Theme:          "Asana – Letting Effort Melt",
		CoreSutras:     "II.47–II.48",
		KeyIdea:        "Allowing effort to give way to ease while maintaining awareness.",
		WeeklyPractice: "During asana, notice unnecessary tension; in final posture consciously soften with each exhale repeating \"Nothing to achieve right now\"; note moments when effort drops but awareness stays clear.",
	},
	{
		Number:         36,
		Theme:          "Pranayama – Awareness of Breath",
		CoreSutras:     "II.49",
		KeyIdea:        "Breath as a bridge between body and mind.",
		WeeklyPractice: "2–3 times per day, do 5 minutes of breath observation; then gently extend exhalation (e.g., inhale 4, exhale 6); track pre/post state on a 1–10 calmness scale.",
	},
	{
		Number:         37,
		Theme:          "Pranayama – Refining the Breath",
		CoreSutras:     "II.50–II.51",
		KeyIdea:        "Regulating length and pattern of breath to quiet the mind.",
		WeeklyPractice: "Choose one basic pranayama (box breathing, 4-7-8, etc.) and practice daily 5–10 minutes; log which technique and how you felt before and after; adjust to find what steadies you best.",
	},
	{
		Number:         38,
		Theme:          "Pratyahara – Withdrawing the Senses",
		CoreSutras:     "II.54–II.55",
		KeyIdea:        "Turning attention inward from sensory objects.",
		WeeklyPractice: "Pick one routine activity (eating, walking, showering) to do without external input; once this week do a 10-minute body-and-senses scan, gently turning attention from sights/sounds to inner sensations.",
	},
	{
		Number:         39,
		Theme:          "Digital Pratyahara",
		CoreSutras:     "II.54 (modern application)",
		KeyIdea:        "Limiting digital inputs to protect attention.",
		WeeklyPractice: "Map when you use phone/feeds; set 2–3 no-input windows (e.g., first 30 minutes after waking, all meals); if you slip, just note it; use freed time for breath, asana, or simple being.",
	},
	{
		Number:         40,
		Theme:          "Building a Short Daily Sequence",
		CoreSutras:     "II.29",
		KeyIdea:        "Integrating posture, breath, and stillness into one routine.",
		WeeklyPractice: "Design a 10–15 minute personal sequence (e.g., 5 min asana, 5 min breath, 5 min sitting); test it daily and refine; write the final version as a clear checklist you can follow automatically.",
	},
	{
		Number:         41,
		Theme:          "Dharana – One-Pointed Focus (Introduction)",
		CoreSutras:     "III.1",
		KeyIdea:        "Fixing attention on a single point.",
		WeeklyPractice: "Choose one meditation object (breath, mantra, visual point); sit daily 5–10 minutes and keep returning to it when distracted; optionally note how many times you catch mind-wandering.",
	},
	{
		Number:         42,
		Theme:          "Dharana – Focus in Daily Tasks",
		CoreSutras:     "III.1",
		KeyIdea:        "Bringing one-pointedness into ordinary activities.",
		WeeklyPractice: "Pick one daily activity (eating, brushing teeth, email) to do in \"single-task mode\" with no multitasking; if interrupted, gently resume focus; journal changes in quality and satisfaction.",
	},
	{
		Number:         43,
		Theme:          "Dhyana – Continuous Flow of Attention",
		CoreSutras:     "III.2",
		KeyIdea:        "Meditation as unbroken flow toward the object.",
		WeeklyPractice: "Extend your sit slightly; after some minutes of deliberate focusing, notice if any moments of effortless staying arise; record conditions (time, posture, prior practices) that seem to support them.",
	},
	{
		Number:         44,
		Theme:          "Dhyana – Attitude in Meditation",
		CoreSutras:     "III.2",
		KeyIdea:        "Gentle, kind persistence beats harsh striving.",
		WeeklyPractice: "Observe your inner voice during practice; whenever distraction is noticed, label it kindly (\"thinking\") and return without self-attack; write once about how this affects your willingness to practice.",
	},
	{
		Number:         45,
		Theme:          "Samadhi – Glimpses of Absorption",
		CoreSutras:     "III.3; I.17–I.18",
		KeyIdea:        "Merging of observer, observed, and observing.",
		WeeklyPractice: "Read a brief explanation of samadhi once; during sits, after stabilizing, experiment with resting as awareness itself for a few breaths; note any moments of spaciousness or ego-lightness without clinging to them.",
	},
	{
		Number:         46,
		Theme:          "Bringing Stillness into Action",
		CoreSutras:     "I.13–I.16; II.28",
		KeyIdea:        "Carrying yogic awareness into challenging situations.",
		WeeklyPractice: "Choose one recurring challenging situation as your \"lab\"; before it, pause for 3 breaths and recall a key principle (e.g., ahimsa, satya); after, debrief in writing what you remembered, forgot, and learned.",
	},
	{
		Number:         47,
		Theme:          "Seeing Samskaras – Deep Patterns",
		CoreSutras:     "I.50–I.51; III.9–III.12",
		KeyIdea:        "Recognizing repeated mental-emotional grooves.",
		WeeklyPractice: "Identify one life \"loop\" (procrastination, conflict style, self-sabotage); track it all week; when it starts, label it and insert a tiny interrupt (5 breaths, one micro-action); log episodes and triggers.",
	},
	{
		Number:         48,
		Theme:          "Cultivating Opposite Tendencies",
		CoreSutras:     "II.33–II.34",
		KeyIdea:        "Countering disturbing states by invoking their opposites.",
		WeeklyPractice: "Choose one dominant state (anger, fear, envy, self-pity) and define its opposite; all week, when it appears, deliberately think and act from the opposite; record at least one example per day.",
	},
	{
		Number:         49,
		Theme:          "Living from the Seer's Perspective",
		CoreSutras:     "I.3; II.20–II.25",
		KeyIdea:        "Stabilizing in the sense of being the witness.",
		WeeklyPractice: "Set 3–5 daily reminders; when they chime, ask \"Who is aware of this?\" and briefly rest as awareness of sensations/thoughts; journal how this shift changes your relationship to stress.",
	},
	{
		Number:         50,
		Theme:          "Your Personal Sādhanā Plan",
		CoreSutras:     "II.28; II.29",
		KeyIdea:        "Designing a balanced personal practice going forward.",
		WeeklyPractice: "Review notes so far; choose one practice each for ethics, body/breath, and mind; define them as specific daily/weekly actions; write a 3-month plan and place it somewhere visible.",
	},
	{
		Number:         51,
		Theme:          "Dharma & Daily Life",
		CoreSutras:     "II.18; II.21–II.23",
		KeyIdea:        "Using your real life as the yoga laboratory.",
		WeeklyPractice: "Map your typical week and mark 3 high-leverage moments; assign a primary principle (ahimsa, tapas, etc.) to each; experiment all week and draft a short \"Yogic Life Manifesto\" in 5–10 sentences.",
	},
	{
		Number:         52,
		Theme:          "Review, Gratitude, and Next Step",
		CoreSutras:     "I.14; IV.30–IV.34",
		KeyIdea:        "Honest review and recommitment on a long path.",
		WeeklyPractice: "Write 1–2 pages reflecting on changes in reactivity, clarity, and stability; write a gratitude letter to your past self for starting; choose one clear commitment for the coming year and state it somewhere you'll see daily.",
	},
}
