package valuation

// bucketMultiples is the static reference table of trailing P/E multiples
// per valuation bucket, after the NYU Stern industry dataset. Values are
// periodically refreshed by hand; treat them as estimates, not quotes.
var bucketMultiples = map[string]float64{
	"Advertising":                        22.1,
	"Aerospace/Defense":                  26.4,
	"Air Transport":                      14.8,
	"Apparel":                            21.3,
	"Auto & Truck":                       17.6,
	"Bank (Money Center)":                11.2,
	"Banks (Regional)":                   10.8,
	"Beverage (Alcoholic)":               19.7,
	"Beverage (Soft)":                    24.6,
	"Biotechnology":                      28.9,
	"Broadcasting":                       12.4,
	"Building Materials":                 18.2,
	"Chemical (Diversified)":             15.9,
	"Chemical (Specialty)":               21.8,
	"Computer Services":                  24.3,
	"Computers/Peripherals":              25.7,
	"Drugs (Pharmaceutical)":             23.4,
	"Electrical Equipment":               23.9,
	"Electronics (Consumer & Office)":    19.5,
	"Engineering/Construction":           18.7,
	"Entertainment":                      33.8,
	"Farming/Agriculture":                16.4,
	"Financial Svcs. (Non-bank)":         14.6,
	"Food Processing":                    18.9,
	"Green & Renewable Energy":           31.2,
	"Healthcare Products":                27.3,
	"Healthcare Support Services":        19.8,
	"Homebuilding":                       9.6,
	"Hotel/Gaming":                       22.7,
	"Household Products":                 23.1,
	"Information Services":               29.4,
	"Insurance (General)":                13.5,
	"Insurance (Life)":                   10.9,
	"Insurance (Prop/Cas.)":              14.2,
	"Investments & Asset Management":     15.7,
	"Machinery":                          21.4,
	"Metals & Mining":                    12.8,
	"Oil/Gas (Integrated)":               11.6,
	"Oil/Gas (Production and Exploration)": 10.4,
	"Oilfield Svcs/Equip.":               14.1,
	"Packaging & Container":              16.8,
	"Power":                              17.9,
	"Precious Metals":                    18.3,
	"Real Estate (General/Diversified)":  21.6,
	"R.E.I.T.":                           28.2,
	"Restaurant/Dining":                  26.8,
	"Retail (General)":                   23.2,
	"Retail (Grocery and Food)":          15.3,
	"Retail (Online)":                    38.6,
	"Retail (Special Lines)":             18.4,
	"Semiconductor":                      34.7,
	"Semiconductor Equip":                27.9,
	"Shipbuilding & Marine":              13.7,
	"Software (Entertainment)":           35.2,
	"Software (Internet)":                41.5,
	"Software (System & Application)":    36.1,
	"Steel":                              8.9,
	"Telecom. Equipment":                 20.6,
	"Telecom. Services":                  13.9,
	"Tobacco":                            12.6,
	"Total Market":                       20.0,
	"Transportation":                     17.2,
	"Trucking":                           16.1,
	"Utility (General)":                  18.6,
	"Utility (Water)":                    24.9,
}

// industryBuckets maps the market-data provider's industry names onto the
// reference buckets. Unmapped industries fall through to the sector
// fallback. The provider's taxonomy drifts; keep this table additive.
var industryBuckets = map[string]string{
	"Advertising Agencies":               "Advertising",
	"Aerospace & Defense":                "Aerospace/Defense",
	"Airlines":                           "Air Transport",
	"Apparel Manufacturing":              "Apparel",
	"Apparel Retail":                     "Retail (Special Lines)",
	"Auto Manufacturers":                 "Auto & Truck",
	"Auto Parts":                         "Auto & Truck",
	"Banks - Diversified":                "Bank (Money Center)",
	"Banks - Regional":                   "Banks (Regional)",
	"Beverages - Brewers":                "Beverage (Alcoholic)",
	"Beverages - Non-Alcoholic":          "Beverage (Soft)",
	"Beverages - Wineries & Distilleries": "Beverage (Alcoholic)",
	"Biotechnology":                      "Biotechnology",
	"Broadcasting":                       "Broadcasting",
	"Building Materials":                 "Building Materials",
	"Building Products & Equipment":      "Building Materials",
	"Capital Markets":                    "Investments & Asset Management",
	"Chemicals":                          "Chemical (Diversified)",
	"Communication Equipment":            "Telecom. Equipment",
	"Computer Hardware":                  "Computers/Peripherals",
	"Consumer Electronics":               "Electronics (Consumer & Office)",
	"Credit Services":                    "Financial Svcs. (Non-bank)",
	"Diagnostics & Research":             "Healthcare Products",
	"Discount Stores":                    "Retail (General)",
	"Drug Manufacturers - General":       "Drugs (Pharmaceutical)",
	"Drug Manufacturers - Specialty & Generic": "Drugs (Pharmaceutical)",
	"Electrical Equipment & Parts":       "Electrical Equipment",
	"Electronic Components":              "Electronics (Consumer & Office)",
	"Engineering & Construction":         "Engineering/Construction",
	"Entertainment":                      "Entertainment",
	"Farm & Heavy Construction Machinery": "Machinery",
	"Farm Products":                      "Farming/Agriculture",
	"Financial Data & Stock Exchanges":   "Information Services",
	"Food Distribution":                  "Retail (Grocery and Food)",
	"Gold":                               "Precious Metals",
	"Grocery Stores":                     "Retail (Grocery and Food)",
	"Health Information Services":        "Healthcare Support Services",
	"Healthcare Plans":                   "Healthcare Support Services",
	"Home Improvement Retail":            "Retail (Special Lines)",
	"Household & Personal Products":      "Household Products",
	"Information Technology Services":    "Computer Services",
	"Insurance - Diversified":            "Insurance (General)",
	"Insurance - Life":                   "Insurance (Life)",
	"Insurance - Property & Casualty":    "Insurance (Prop/Cas.)",
	"Internet Content & Information":     "Software (Internet)",
	"Internet Retail":                    "Retail (Online)",
	"Lodging":                            "Hotel/Gaming",
	"Medical Devices":                    "Healthcare Products",
	"Medical Instruments & Supplies":     "Healthcare Products",
	"Oil & Gas E&P":                      "Oil/Gas (Production and Exploration)",
	"Oil & Gas Equipment & Services":     "Oilfield Svcs/Equip.",
	"Oil & Gas Integrated":               "Oil/Gas (Integrated)",
	"Packaged Foods":                     "Food Processing",
	"Packaging & Containers":             "Packaging & Container",
	"Railroads":                          "Transportation",
	"REIT - Diversified":                 "R.E.I.T.",
	"REIT - Industrial":                  "R.E.I.T.",
	"REIT - Residential":                 "R.E.I.T.",
	"REIT - Retail":                      "R.E.I.T.",
	"REIT - Specialty":                   "R.E.I.T.",
	"Residential Construction":           "Homebuilding",
	"Resorts & Casinos":                  "Hotel/Gaming",
	"Restaurants":                        "Restaurant/Dining",
	"Semiconductor Equipment & Materials": "Semiconductor Equip",
	"Semiconductors":                     "Semiconductor",
	"Software - Application":             "Software (System & Application)",
	"Software - Infrastructure":          "Software (System & Application)",
	"Solar":                              "Green & Renewable Energy",
	"Specialty Chemicals":                "Chemical (Specialty)",
	"Specialty Industrial Machinery":     "Machinery",
	"Specialty Retail":                   "Retail (Special Lines)",
	"Steel":                              "Steel",
	"Telecom Services":                   "Telecom. Services",
	"Tobacco":                            "Tobacco",
	"Travel Services":                    "Hotel/Gaming",
	"Trucking":                           "Trucking",
	"Utilities - Diversified":            "Utility (General)",
	"Utilities - Regulated Electric":     "Utility (General)",
	"Utilities - Regulated Gas":          "Utility (General)",
	"Utilities - Regulated Water":        "Utility (Water)",
	"Utilities - Renewable":              "Green & Renewable Energy",
}

// sectorBuckets maps the provider's sector names onto a broad bucket when
// the industry itself is unmapped. Anything else falls to "Total Market".
var sectorBuckets = map[string]string{
	"Basic Materials":        "Chemical (Diversified)",
	"Communication Services": "Telecom. Services",
	"Consumer Cyclical":      "Retail (General)",
	"Consumer Defensive":     "Household Products",
	"Energy":                 "Oil/Gas (Integrated)",
	"Financial Services":     "Financial Svcs. (Non-bank)",
	"Healthcare":             "Healthcare Products",
	"Industrials":            "Machinery",
	"Real Estate":            "Real Estate (General/Diversified)",
	"Technology":             "Software (System & Application)",
	"Utilities":              "Utility (General)",
}
