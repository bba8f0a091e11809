package models

// Bundled defaults seed the store at construction. They stay in place until
// the first non-empty fetch from the remote data service replaces the whole
// collection, and they keep the public site presentable when the remote is
// empty or unreachable.

// DefaultConfig returns the bundled site configuration.
func DefaultConfig() SiteConfig {
	return SiteConfig{
		CompanyName:      "HanifGold Luxury Tiling",
		Phone:            "+234 800 123 4567",
		Email:            "contact@hanifgold.com",
		Address:          "15 Victoria Island Blvd, Lagos, Nigeria",
		WhatsappNumber:   "2348001234567",
		InstagramURL:     "#",
		FacebookURL:      "#",
		TiktokURL:        "#",
		AboutText:        "HanifGold Luxury Tiling Services is the premier provider of exquisite floor and wall solutions in Lagos, Ibadan, and Ogun State. With over a decade of experience, we transform spaces into masterpieces using the finest Italian and Spanish materials.",
		MissionStatement: "To deliver perfection in every square inch, ensuring durability meets luxury.",
		PrimaryColor:     "#C59D24",
	}
}

// DefaultServices returns the bundled service catalogue.
func DefaultServices() []Service {
	return []Service{
		{
			ID:               "1",
			Title:            "Italian Marble Installation",
			ShortDescription: "Timeless elegance for your living spaces with premium imported marble.",
			FullDescription:  "Our Italian Marble installation service is designed for those who appreciate the finer things in life. We source the highest grade Carrera and Calacatta marble, ensuring perfect vein matching and zero-lippage installation.",
			ImageURL:         "https://images.unsplash.com/photo-1618221639263-1655d59d901f?q=80&w=1000&auto=format&fit=crop",
			Features:         []string{"Precision Cutting", "Vein Matching", "Polishing & Sealing"},
		},
		{
			ID:               "2",
			Title:            "Spanish Porcelain",
			ShortDescription: "Durability meets modern aesthetics with high-grade Spanish tiles.",
			FullDescription:  "Spanish Porcelain offers the perfect blend of rugged durability and sleek modern design. Ideal for high-traffic areas, these tiles are resistant to scratches and stains while providing a stunning finish.",
			ImageURL:         "https://images.unsplash.com/photo-1615873968403-89e068629265?q=80&w=1000&auto=format&fit=crop",
			Features:         []string{"Heavy Traffic Rated", "Large Format Options", "Stain Resistant"},
		},
		{
			ID:               "3",
			Title:            "Bathroom Redesign",
			ShortDescription: "Transform your bathroom into a personal spa sanctuary.",
			FullDescription:  "We specialize in complete bathroom wet-area tiling. From waterproofing to the final grout line, we ensure your bathroom is not only beautiful but completely water-tight and functional.",
			ImageURL:         "https://images.unsplash.com/photo-1604014237800-1c9102c219da?q=80&w=1000&auto=format&fit=crop",
			Features:         []string{"Waterproofing", "Mosaic Accents", "Non-slip Options"},
		},
	}
}

// DefaultProjects returns the bundled portfolio, newest first.
func DefaultProjects() []Project {
	return []Project{
		{
			ID:          "p1",
			Title:       "Lekki Phase 1 Penthouse",
			Category:    "Residential",
			Location:    "Lekki, Lagos",
			Description: "Complete floor overhaul using 120x120 High Gloss White Granite. The result is a seamless, mirror-like finish that expands the visual space of the apartment.",
			ImageURL:    "https://images.unsplash.com/photo-1600585154340-be6161a56a0c?q=80&w=1000&auto=format&fit=crop",
			Date:        "2023-11-15",
		},
		{
			ID:          "p2",
			Title:       "Ibadan Boutique Hotel",
			Category:    "Commercial",
			Location:    "Bodija, Ibadan",
			Description: "Lobby and reception tiling featuring intricate mosaic patterns and durable hallway styling for high footfall.",
			ImageURL:    "https://images.unsplash.com/photo-1600607687939-ce8a6c25118c?q=80&w=1000&auto=format&fit=crop",
			Date:        "2023-09-20",
		},
		{
			ID:          "p3",
			Title:       "Abeokuta Country Home",
			Category:    "Outdoor",
			Location:    "Abeokuta, Ogun",
			Description: "Outdoor patio and pool deck tiling using non-slip, weather-resistant natural stone textures.",
			ImageURL:    "https://images.unsplash.com/photo-1576013551627-0cc20b96c2a7?q=80&w=1000&auto=format&fit=crop",
			Date:        "2023-08-05",
		},
	}
}

// DefaultTestimonials returns the bundled client testimonials.
func DefaultTestimonials() []Testimonial {
	return []Testimonial{
		{
			ID:         "t1",
			ClientName: "Chief Mrs. Adebayo",
			Role:       "Homeowner, Victoria Island",
			Content:    "The attention to detail HanifGold showed was impeccable. My living room looks like a palace now.",
			Rating:     5,
		},
		{
			ID:         "t2",
			ClientName: "Mr. Johnson",
			Role:       "Developer, Ibadan",
			Content:    "Professional, on time, and within budget. Best tilers in the South West.",
			Rating:     5,
		},
	}
}

// DefaultBlogPosts returns the bundled blog posts, newest first.
func DefaultBlogPosts() []BlogPost {
	return []BlogPost{
		{
			ID:       "b1",
			Title:    "Top 5 Trends in Luxury Tiling for 2024",
			Excerpt:  "Discover what's hot in the world of high-end flooring, from large format porcelain to sustainable natural stone.",
			Content:  "The world of luxury tiling is ever-evolving. This year, we are seeing a massive shift towards large format tiles that minimize grout lines, creating a seamless, expansive look. Additionally, biophilic designs that mimic natural textures like wood and stone are in high demand across Lagos luxury apartments...",
			ImageURL: "https://images.unsplash.com/photo-1615529182904-14819c35db37?q=80&w=1000&auto=format&fit=crop",
			Date:     "2024-01-10",
			Author:   "HanifGold Team",
			Status:   PostPublished,
			Category: "Trends",
		},
		{
			ID:       "b2",
			Title:    "Maintaining Your Italian Marble Floors",
			Excerpt:  "A comprehensive guide to keeping your marble surfaces pristine and polished for decades.",
			Content:  "Italian Marble is an investment in timeless beauty. However, it requires specific care to maintain its luster. Avoid acidic cleaners like lemon or vinegar, as they can etch the surface. Instead, use pH-neutral cleaners and ensure you seal your floors annually to prevent staining...",
			ImageURL: "https://images.unsplash.com/photo-1599690940578-8fc5668e1a6c?q=80&w=1000&auto=format&fit=crop",
			Date:     "2024-02-15",
			Author:   "HanifGold Team",
			Status:   PostPublished,
			Category: "Maintenance",
		},
	}
}
